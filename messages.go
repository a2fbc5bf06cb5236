package formhandler

import (
	"sync"

	"github.com/augensalat/html-formhandler/pkg/i18n"
)

// Message keys used by the built-in validation checks. Custom catalogs
// override messages by carrying translations for these keys.
const (
	MsgRequired      = "required"
	MsgMultiple      = "multiple"
	MsgInvalidChoice = "invalid_choice"
	MsgRangeBetween  = "range_between"
	MsgRangeStart    = "range_start"
	MsgRangeEnd      = "range_end"
	MsgInteger       = "integer"
	MsgNumber        = "number"
	MsgBoolean       = "boolean"
	MsgEmail         = "email"
	MsgUUID          = "uuid"
	MsgDate          = "date"
	MsgDateTime      = "datetime"
	MsgCompound      = "compound"
)

// DefaultMessages returns the built-in English validation messages. Pass the
// map to i18n.WithMessages when assembling a custom catalog so overridden
// catalogs keep sensible defaults for keys they don't translate.
func DefaultMessages() map[string]any {
	return map[string]any{
		MsgRequired:      "This field is required",
		MsgMultiple:      "This field does not take multiple values",
		MsgInvalidChoice: "'{{value}}' is not a valid value",
		MsgRangeBetween:  "value must be between {{start}} and {{end}}",
		MsgRangeStart:    "value must not be less than {{start}}",
		MsgRangeEnd:      "value must not be greater than {{end}}",
		MsgInteger:       "Value must be an integer",
		MsgNumber:        "Value must be a number",
		MsgBoolean:       "Value must be a boolean",
		MsgEmail:         "Email address is invalid",
		MsgUUID:          "Value is not a valid UUID",
		MsgDate:          "Invalid date",
		MsgDateTime:      "Invalid date or time",
		MsgCompound:      "Invalid nested input",
	}
}

var (
	defaultTrOnce sync.Once
	defaultTr     *i18n.Translator
)

// defaultTranslator is the process-wide fallback used by forms and
// standalone fields without an injected translator. Built once, read-only
// afterwards.
func defaultTranslator() *i18n.Translator {
	defaultTrOnce.Do(func() {
		catalog, err := i18n.New(
			i18n.WithDefaultLanguage(i18n.DefaultLang),
			i18n.WithMessages(i18n.DefaultLang, DefaultMessages()),
		)
		if err != nil {
			// Static input; an error here is a bug in DefaultMessages.
			panic(err)
		}
		defaultTr = catalog.Translator(i18n.DefaultLang)
	})
	return defaultTr
}
