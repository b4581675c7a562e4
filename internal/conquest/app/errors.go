package app

import "IdleConquest/modules/kit/errx"

// Code 应用层错误码（贴近对外协议语义）。
type Code = errx.Code

const (
	CodeInvalidCombatant Code = "CONQUEST_INVALID_COMBATANT"
	CodeCityNotFound     Code = "CONQUEST_CITY_NOT_FOUND"
	// CodeInternalServer / CodeUnavailable 复用 kit 的统一系统码。
	CodeInternalServer Code = errx.CodeInternal
	CodeUnavailable    Code = errx.CodeUnavailable
)

// Error 复用通用错误模型：对外语义(code/msg)、上下文(data)、溯源链(cause)。
type Error = errx.Error

func NewError(code Code, msg string) *Error {
	return errx.NewBiz(code, msg)
}

func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

// 哨兵错误：禁止直接改其 data/cause，需要上下文时用 WithData/WithCause 派生。
var (
	ErrInvalidCombatant = errx.NewBiz(CodeInvalidCombatant, "参战数据不完整")
	// ErrCityNotFound 是引擎与注册表之间的硬性约束被破坏，按系统错误上抛。
	ErrCityNotFound   = errx.NewSys(CodeCityNotFound, "城池不存在于注册表")
	ErrInternalServer = errx.ErrInternal
	ErrUnavailable    = errx.ErrUnavailable
)
