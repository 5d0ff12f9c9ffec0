package lookerlib

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sources report that they know nothing with strings like "Unknown
// City". Such values are treated as missing.
const unknownPrefix = "Unknown"

// These fields are omitted entirely if missing. The rest get a
// placeholder, see MissingValue.
var omitIfMissing = map[string]bool{
	FieldRegion: true,
	FieldISP:    true,
	FieldOrg:    true,
}

// ExtractedFields maps canonical field name to a value. Empty value
// means that the field has to be omitted.
type ExtractedFields map[string]string

// Record builds a record out of extracted fields.
func (e ExtractedFields) Record(source string) Record {
	return Record{
		Source:  source,
		Country: e[FieldCountry],
		Region:  e[FieldRegion],
		City:    e[FieldCity],
		ISP:     e[FieldISP],
		Org:     e[FieldOrg],
	}
}

// MissingValue returns a value field gets if source has not reported
// it: an empty string for region, isp and org, "Unknown <Field>" for
// the rest.
func MissingValue(field string) string {
	if omitIfMissing[field] || field == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(field)

	return unknownPrefix + " " + string(unicode.ToUpper(first)) + strings.ToLower(field[size:])
}

// DataAt walks a payload along the given path. It returns false if
// path leads nowhere or to an empty object.
func DataAt(payload Payload, path []string) (Payload, bool) {
	current := map[string]interface{}(payload)

	for _, key := range path {
		switch next := current[key].(type) {
		case map[string]interface{}:
			current = next
		case Payload:
			current = next
		default:
			return nil, false
		}
	}

	if len(current) == 0 {
		return nil, false
	}

	return Payload(current), true
}

// ExtractFields pulls declared fields out of the source object. It
// always returns a value for each declared field.
func ExtractFields(data Payload, specs []FieldSpec) ExtractedFields {
	rv := make(ExtractedFields, len(specs))

	for _, spec := range specs {
		value, ok := scalarString(data[spec.Key])

		if !ok || value == "" || strings.HasPrefix(value, unknownPrefix) {
			value = MissingValue(spec.Name)
		}

		rv[spec.Name] = value
	}

	return rv
}

// ExtractSecurity reads security flags. It returns nil if spec is nil.
func ExtractSecurity(data Payload, spec *SecuritySpec) *Security {
	if spec == nil {
		return nil
	}

	rv := &Security{
		IsVPN:        truthyAt(data, spec.VPN),
		IsProxy:      truthyAt(data, spec.Proxy),
		IsTor:        truthyAt(data, spec.Tor),
		IsDatacenter: truthyAt(data, spec.Datacenter),
		IsAnonymous:  truthyAt(data, spec.Anonymous),
	}

	if value, ok := valueAt(data, spec.VPNService); ok {
		if service, ok := scalarString(value); ok && !strings.HasPrefix(service, unknownPrefix) {
			rv.VPNService = service
		}
	}

	return rv
}

func valueAt(data Payload, path []string) (interface{}, bool) {
	if len(path) == 0 {
		return nil, false
	}

	parent, ok := DataAt(data, path[:len(path)-1])
	if !ok {
		return nil, false
	}

	value, ok := parent[path[len(path)-1]]

	return value, ok
}

func truthyAt(data Payload, path []string) bool {
	value, ok := valueAt(data, path)
	if !ok {
		return false
	}

	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y":
			return true
		}
	}

	return false
}

// Falsy JSON values (false, 0, null) count as missing.
func scalarString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		if v == 0 {
			return "", false
		}

		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return "", false
		}

		return v.String(), true
	case bool:
		if !v {
			return "", false
		}

		return strconv.FormatBool(v), true
	}

	return "", false
}
