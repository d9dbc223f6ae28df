package odata

import (
	"encoding/json"
	"net/http"
)

// parseResponse turns a raw 1C response into the JSON payload the caller
// cares about. Collection responses come wrapped in an envelope object with
// a "value" member, which is unwrapped here. Error responses are decoded
// into *Error.
func parseResponse(statusCode int, body []byte) (json.RawMessage, error) {
	if statusCode == http.StatusOK || statusCode == http.StatusCreated {
		if !json.Valid(body) {
			return nil, &ParseError{Body: string(body)}
		}
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err == nil {
			if value, ok := envelope["value"]; ok {
				return value, nil
			}
		}
		return body, nil
	}
	return nil, parseError(statusCode, body)
}

// parseError decodes the "odata.error" body 1C sends on failures. The
// human-readable part lives under message.value. A body without it is
// reported as a ParseError.
func parseError(statusCode int, body []byte) error {
	var errorBody struct {
		OdataError *struct {
			Code    json.Number `json:"code"`
			Message struct {
				Value string `json:"value"`
			} `json:"message"`
		} `json:"odata.error"`
	}
	if err := json.Unmarshal(body, &errorBody); err != nil || errorBody.OdataError == nil {
		return &ParseError{Body: string(body)}
	}
	if errorBody.OdataError.Message.Value == "" {
		return &ParseError{Body: string(body)}
	}
	return &Error{
		StatusCode: statusCode,
		Code:       errorBody.OdataError.Code.String(),
		Message:    errorBody.OdataError.Message.Value,
	}
}
