package sep

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeEntity parses a response body into T. Decode failures wrap ErrDecode
// with jsoniter's error, which names the offending field.
func decodeEntity[T any](body []byte) (*T, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrDecode.Msg("response body is not valid JSON")
	}
	v := new(T)
	if err := json.Unmarshal(body, v); err != nil {
		return nil, ErrDecode.MsgErr("unable to decode response body: "+err.Error(), err)
	}
	return v, nil
}

// decodeList parses a response body holding a JSON array of T.
func decodeList[T any](body []byte) ([]T, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrDecode.Msg("response body is not valid JSON")
	}
	var v []T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, ErrDecode.MsgErr("unable to decode response body: "+err.Error(), err)
	}
	return v, nil
}
