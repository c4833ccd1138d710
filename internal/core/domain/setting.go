package domain

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// SettingsSourceFile and SettingsSourceDatabase are the values of the settings_source switch.
const (
	SettingsSourceFile     = "file"
	SettingsSourceDatabase = "database"
)

// Well-known setting keys.
const (
	SettingKeySettingsSource     = "settings_source"
	SettingKeyDefaultCurrency    = "default_currency"
	SettingKeyConversion         = "conversion"
	SettingKeyApplyFees          = "conversion.apply_fees"
	SettingKeyLogConversions     = "conversion.log_conversions"
	SettingKeyRoundPrecision     = "conversion.round_precision"
	SettingKeyAPIKey             = "api.key"
	SettingKeyAPIUpdateFrequency = "api.update_frequency"
	SettingKeyTablePrefix        = "table_prefix"
)

const redactedSettingPlaceholder = "********"

// Setting is one row of the key/value settings table.
type Setting struct {
	ID    int64   `json:"id"`
	Key   string  `json:"key"`
	Value *string `json:"value"`
	Timestamps
}

// SettingKind tags a decoded setting value.
type SettingKind int

const (
	// SettingKindScalar is raw text that is not valid JSON.
	SettingKindScalar SettingKind = iota
	// SettingKindStructured is text that decoded as JSON (objects, arrays, numbers, booleans).
	SettingKindStructured
)

// SettingValue is a setting decoded from its stored text.
type SettingValue struct {
	Kind       SettingKind
	Raw        string
	Structured any
}

// DecodeSettingValue decides between structured and scalar by attempting a JSON decode.
func DecodeSettingValue(raw string) SettingValue {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		return SettingValue{Kind: SettingKindStructured, Raw: raw, Structured: decoded}
	}
	return SettingValue{Kind: SettingKindScalar, Raw: raw}
}

// Value returns the decoded structure for structured values and the raw text otherwise.
func (v SettingValue) Value() any {
	if v.Kind == SettingKindStructured {
		return v.Structured
	}
	return v.Raw
}

// EncodeSettingValue turns a value into its stored text. Mappings, sequences and
// structs are JSON-encoded; scalars are stored as plain text. nil encodes to nil.
func EncodeSettingValue(value any) (*string, error) {
	if value == nil {
		return nil, nil
	}
	if s, ok := value.(string); ok {
		return &s, nil
	}
	if _, ok := value.(fmt.Stringer); !ok {
		switch reflect.Indirect(reflect.ValueOf(value)).Kind() {
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("failed to encode setting value: %w", err)
			}
			s := string(encoded)
			return &s, nil
		}
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode setting value: %w", err)
	}
	return &s, nil
}

// IsSecretSettingKey reports whether a key must never be echoed back to callers.
func IsSecretSettingKey(key string) bool {
	return key == SettingKeyAPIKey || key == "api"
}

// RedactSettings masks secret values in a settings map in place and returns it.
func RedactSettings(settings map[string]any) map[string]any {
	for key, value := range settings {
		if key == SettingKeyAPIKey {
			settings[key] = redactedSettingPlaceholder
			continue
		}
		if key == "api" {
			if m, ok := value.(map[string]any); ok {
				if _, has := m["key"]; has {
					m["key"] = redactedSettingPlaceholder
				}
			}
		}
	}
	return settings
}
