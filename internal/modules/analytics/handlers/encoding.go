package handlers

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"
)

// Response content types.
const (
	ContentTypeJSON    = "application/json"
	ContentTypeMsgpack = "application/msgpack"
)

func init() {
	// Decimals travel as strings in both encodings so no precision is lost.
	msgpack.Register(decimal.Decimal{},
		func(e *msgpack.Encoder, v reflect.Value) error {
			return e.EncodeString(v.Interface().(decimal.Decimal).String())
		},
		func(d *msgpack.Decoder, v reflect.Value) error {
			s, err := d.DecodeString()
			if err != nil {
				return err
			}
			parsed, err := decimal.NewFromString(s)
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(parsed))
			return nil
		},
	)
}

// negotiate picks the response encoding from the Accept header.
// Anything other than an explicit msgpack request gets JSON.
func negotiate(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mediaType {
		case ContentTypeMsgpack, "application/x-msgpack":
			return ContentTypeMsgpack
		}
	}
	return ContentTypeJSON
}

// encode renders v in the given content type. Map and struct keys follow the
// json tags in both encodings.
func encode(contentType string, v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if contentType == ContentTypeMsgpack {
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
