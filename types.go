package formhandler

import (
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is the per-type validation contract of a field. Validate runs after
// the built-in presence, multiplicity, and choice checks; it may coerce the
// input and set the field's value directly, in which case the generic
// input-to-value copy is skipped.
type Type interface {
	Validate(f *Field) bool
}

// multiValued is implemented by types that accept sequence input.
type multiValued interface {
	AcceptsMultiple() bool
}

// fifExpander is implemented by types that supply their own fill-in
// representation, possibly expanding one value into several entries.
type fifExpander interface {
	FIFValue(f *Field, v any) any
}

// initializer is implemented by types that preset field flags when the
// schema is built.
type initializer interface {
	Init(f *Field)
}

// textType backs Text and Hidden fields: any scalar string is acceptable,
// the apply pipeline does the interesting work.
type textType struct{}

func (textType) Validate(f *Field) bool {
	v, ok := f.applySteps(f.scalarInput())
	if !ok {
		return false
	}
	if len(f.steps) > 0 {
		f.SetValue(v)
	}
	return true
}

// passwordType is a text field whose fill-in output is always withheld.
type passwordType struct{ textType }

func (passwordType) Init(f *Field) { f.password = true }

type integerType struct{}

func (integerType) Validate(f *Field) bool {
	s, _ := f.scalarInput().(string)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		f.AddError(MsgInteger)
		return false
	}
	v, ok := f.applySteps(n)
	if !ok {
		return false
	}
	f.SetValue(v)
	return true
}

type numberType struct{}

func (numberType) Validate(f *Field) bool {
	s, _ := f.scalarInput().(string)
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		f.AddError(MsgNumber)
		return false
	}
	v, ok := f.applySteps(n)
	if !ok {
		return false
	}
	f.SetValue(v)
	return true
}

type booleanType struct{}

func (booleanType) Validate(f *Field) bool {
	s, _ := f.scalarInput().(string)
	var b bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		b = true
	case "", "0", "false", "off", "no":
		b = false
	default:
		f.AddError(MsgBoolean)
		return false
	}
	v, ok := f.applySteps(b)
	if !ok {
		return false
	}
	f.SetValue(v)
	return true
}

func (booleanType) FIFValue(_ *Field, v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return "1"
		}
		return "0"
	}
	return fifString(v)
}

// selectType relies entirely on the generic choice check; the apply
// pipeline may still post-process the chosen value.
type selectType struct{ textType }

// multipleType is a select accepting several values. Blank elements are
// dropped before the value is set.
type multipleType struct{}

func (multipleType) AcceptsMultiple() bool { return true }

func (multipleType) Validate(f *Field) bool {
	picked := make([]string, 0, len(f.inputList()))
	for _, s := range f.inputList() {
		if strings.TrimSpace(s) == "" {
			continue
		}
		picked = append(picked, s)
	}
	v, ok := f.applySteps(picked)
	if !ok {
		return false
	}
	f.SetValue(v)
	return true
}

type emailType struct{}

func (emailType) Validate(f *Field) bool {
	s, _ := f.scalarInput().(string)
	addr, err := mail.ParseAddress(strings.TrimSpace(s))
	if err != nil {
		f.AddError(MsgEmail)
		return false
	}
	v, ok := f.applySteps(addr.Address)
	if !ok {
		return false
	}
	f.SetValue(v)
	return true
}

type uuidType struct{}

func (uuidType) Validate(f *Field) bool {
	s, _ := f.scalarInput().(string)
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		f.AddError(MsgUUID)
		return false
	}
	v, ok := f.applySteps(id.String())
	if !ok {
		return false
	}
	f.SetValue(v)
	return true
}

const dateLayout = "2006-01-02"

type dateType struct{}

func (dateType) Validate(f *Field) bool {
	s, _ := f.scalarInput().(string)
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		f.AddError(MsgDate)
		return false
	}
	v, ok := f.applySteps(t)
	if !ok {
		return false
	}
	f.SetValue(v)
	return true
}

func (dateType) FIFValue(_ *Field, v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format(dateLayout)
	}
	return fifString(v)
}

type dateTimeType struct{}

func (dateTimeType) Validate(f *Field) bool {
	s, _ := f.scalarInput().(string)
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Accept the datetime-local control format as well.
		t, err = time.Parse("2006-01-02T15:04", s)
	}
	if err != nil {
		f.AddError(MsgDateTime)
		return false
	}
	v, ok := f.applySteps(t)
	if !ok {
		return false
	}
	f.SetValue(v)
	return true
}
