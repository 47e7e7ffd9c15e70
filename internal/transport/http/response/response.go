package response

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New keeps data non-null on the wire.
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// FieldError is one entry of a validation failure list.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Invalid reports a validation failure with the offending fields attached.
func Invalid(errs []FieldError) Resp {
	return New(CodeBadRequest, CodeMsgMap[CodeBadRequest], map[string]any{"errors": errs})
}
