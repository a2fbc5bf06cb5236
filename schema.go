package formhandler

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// schemaDoc is the YAML shape accepted by ParseSchema.
type schemaDoc struct {
	Fields []schemaField `yaml:"fields"`
}

type schemaField struct {
	Name            string        `yaml:"name"`
	Type            string        `yaml:"type"`
	Label           string        `yaml:"label"`
	Accessor        string        `yaml:"accessor"`
	Required        bool          `yaml:"required"`
	RequiredMessage string        `yaml:"required_message"`
	Multiple        bool          `yaml:"multiple"`
	Password        bool          `yaml:"password"`
	WriteOnly       bool          `yaml:"writeonly"`
	NoUpdate        bool          `yaml:"noupdate"`
	Clear           bool          `yaml:"clear"`
	Disabled        bool          `yaml:"disabled"`
	Readonly        bool          `yaml:"readonly"`
	Format          string        `yaml:"format"`
	Default         *string       `yaml:"default"`
	Range           *schemaRange  `yaml:"range"`
	Choices         []yaml.Node   `yaml:"choices"`
	Fields          []schemaField `yaml:"fields"`
}

type schemaRange struct {
	Start *float64 `yaml:"start"`
	End   *float64 `yaml:"end"`
}

// ParseSchema reads a declarative YAML form schema into field declarations:
//
//	fields:
//	  - name: name
//	    type: Text
//	    required: true
//	  - name: age
//	    type: Integer
//	    range: { start: 0, end: 150 }
//	  - name: color
//	    type: Select
//	    choices:
//	      - { value: "1", label: red }
//	      - { value: "2", label: blue }
//
// Choices also accept a flat alternating value/label list
// ("[1, red, 2, blue]"); an odd element count is a schema error.
func ParseSchema(data []byte) ([]*FieldDecl, error) {
	var doc schemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("formhandler: parsing schema: %w", err)
	}
	return buildDecls(doc.Fields)
}

func buildDecls(fields []schemaField) ([]*FieldDecl, error) {
	decls := make([]*FieldDecl, 0, len(fields))
	for _, sf := range fields {
		decl, err := sf.toDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func (sf schemaField) toDecl() (*FieldDecl, error) {
	if sf.Name == "" {
		return nil, fmt.Errorf("formhandler: schema field without a name")
	}
	typeTag := sf.Type
	if typeTag == "" {
		typeTag = "Text"
	}

	var opts []FieldOption
	if sf.Label != "" {
		opts = append(opts, Label(sf.Label))
	}
	if sf.Accessor != "" {
		opts = append(opts, Accessor(sf.Accessor))
	}
	if sf.Required {
		opts = append(opts, Required())
	}
	if sf.RequiredMessage != "" {
		opts = append(opts, RequiredMessage(sf.RequiredMessage))
	}
	if sf.Multiple {
		opts = append(opts, Multiple())
	}
	if sf.Password {
		opts = append(opts, Password())
	}
	if sf.WriteOnly {
		opts = append(opts, WriteOnly())
	}
	if sf.NoUpdate {
		opts = append(opts, NoUpdate())
	}
	if sf.Clear {
		opts = append(opts, Clear())
	}
	if sf.Disabled {
		opts = append(opts, Disabled())
	}
	if sf.Readonly {
		opts = append(opts, Readonly())
	}
	if sf.Format != "" {
		opts = append(opts, Format(sf.Format))
	}
	if sf.Default != nil {
		opts = append(opts, Default(*sf.Default))
	}
	if sf.Range != nil {
		switch {
		case sf.Range.Start != nil && sf.Range.End != nil:
			opts = append(opts, Range(*sf.Range.Start, *sf.Range.End))
		case sf.Range.Start != nil:
			opts = append(opts, RangeStart(*sf.Range.Start))
		case sf.Range.End != nil:
			opts = append(opts, RangeEnd(*sf.Range.End))
		}
	}

	if len(sf.Choices) > 0 {
		choices, err := parseChoices(sf.Name, sf.Choices)
		if err != nil {
			return nil, err
		}
		opts = append(opts, Choices(choices...))
	}

	if len(sf.Fields) > 0 {
		children, err := buildDecls(sf.Fields)
		if err != nil {
			return nil, err
		}
		opts = append(opts, Children(children...))
	}

	return NewField(sf.Name, typeTag, opts...), nil
}

// parseChoices accepts either a list of {value, label} mappings or a flat
// alternating value/label scalar list.
func parseChoices(fieldName string, nodes []yaml.Node) ([]Choice, error) {
	if nodes[0].Kind == yaml.MappingNode {
		choices := make([]Choice, 0, len(nodes))
		for _, node := range nodes {
			var c struct {
				Value string `yaml:"value"`
				Label string `yaml:"label"`
			}
			if err := node.Decode(&c); err != nil {
				return nil, fmt.Errorf("formhandler: field %q: decoding choice: %w", fieldName, err)
			}
			choices = append(choices, Choice{Value: c.Value, Label: c.Label})
		}
		return choices, nil
	}

	if len(nodes)%2 != 0 {
		return nil, fmt.Errorf("%w: field %q has %d elements", ErrBadChoices, fieldName, len(nodes))
	}
	choices := make([]Choice, 0, len(nodes)/2)
	for i := 0; i < len(nodes); i += 2 {
		choices = append(choices, Choice{Value: nodes[i].Value, Label: nodes[i+1].Value})
	}
	return choices, nil
}
