package log

import (
	"fmt"

	"go.uber.org/zap"
)

// toFields turns a loose key-value list into zap fields.
//
// A zap.Field or a bare error may appear anywhere and is taken as-is. Other
// entries are consumed as (key, value) pairs; a non-string key is stringified
// under "invalid_key_<n>" and a trailing unpaired value lands under "arg#<n>".
func toFields(args ...any) []zap.Field {
	if len(args) == 0 {
		return nil
	}

	fields := make([]zap.Field, 0, len(args)/2+1)
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case zap.Field:
			fields = append(fields, v)
			continue
		case error:
			fields = append(fields, zap.Error(v))
			continue
		}

		if i == len(args)-1 {
			fields = append(fields, zap.Any(fmt.Sprintf("arg#%d", i), args[i]))
			break
		}

		key, ok := args[i].(string)
		if !ok {
			fields = append(fields, zap.Any(fmt.Sprintf("invalid_key_%d", i), map[string]any{
				"key":   args[i],
				"value": args[i+1],
			}))
		} else {
			// zap.Any picks the typed constructor (String, Int64, Duration, Stringer, ...).
			fields = append(fields, zap.Any(key, args[i+1]))
		}
		i++
	}

	return fields
}
