package dto

// Response 统一 HTTP 响应壳：code 为 0 表示成功。
type Response struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg,omitempty"`
	Reason string `json:"reason,omitempty"`
	Data   any    `json:"data,omitempty"`
}

func Success(code int, data any) Response {
	return Response{Code: code, Data: data}
}

func Error(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}

func Rejected(code int, reason, msg string) Response {
	return Response{Code: code, Reason: reason, Msg: msg}
}
