package board

import "slices"

// MIMEPlainText is the only payload type drop targets accept.
const MIMEPlainText = "text/plain"

// Effect is the drag effect a source allows.
type Effect string

// EffectNone and EffectMove are the supported drag effects.
const (
	EffectNone Effect = "none"
	EffectMove Effect = "move"
)

// DataTransfer carries the typed payload of one drag gesture. The zero value
// is an empty payload.
type DataTransfer struct {
	EffectAllowed Effect

	types []string
	data  map[string]string
}

// NewDataTransfer constructs an empty payload.
func NewDataTransfer() *DataTransfer {
	return &DataTransfer{
		EffectAllowed: EffectNone,
		data:          map[string]string{},
	}
}

// SetData stores value under format.
func (d *DataTransfer) SetData(format, value string) {
	if d.data == nil {
		d.data = map[string]string{}
	}
	if _, ok := d.data[format]; !ok {
		d.types = append(d.types, format)
	}
	d.data[format] = value
}

// GetData returns the value stored under format.
func (d *DataTransfer) GetData(format string) string {
	if d == nil {
		return ""
	}
	return d.data[format]
}

// Types lists payload formats in the order they were set.
func (d *DataTransfer) Types() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.types)
}
