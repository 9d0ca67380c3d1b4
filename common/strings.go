package common

import "github.com/wI2L/jettison"

// MarshalToString encodes obj as JSON without HTML escaping, so the '&' of a
// payment URI is written as is instead of \u0026.
func MarshalToString(obj interface{}) ([]byte, error) {
	return jettison.MarshalOpts(obj, jettison.NoHTMLEscaping())
}
