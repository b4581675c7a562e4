package handler

import (
	"context"
	"errors"

	conquestactor "IdleConquest/internal/conquest/actor"
	"IdleConquest/internal/conquest/app"
	"IdleConquest/internal/shared/transport"
)

// 业务拒绝 reason 与客户端提示的对照。未列入的按系统繁忙处理。
var reasonMessages = map[string]string{
	app.ReasonNoEligibleTarget.Code: app.ReasonNoEligibleTarget.Message,
	app.ReasonCannotAfford.Code:     app.ReasonCannotAfford.Message,
	app.ReasonCityOwned.Code:        app.ReasonCityOwned.Message,
	app.ReasonCityUnderSiege.Code:   app.ReasonCityUnderSiege.Message,
	app.ReasonSiegeLimit.Code:       app.ReasonSiegeLimit.Message,
	app.ReasonAutomationPaused.Code: app.ReasonAutomationPaused.Message,
	app.ReasonAllConquered.Code:     app.ReasonAllConquered.Message,
	app.ReasonInvalidCombatant.Code: app.ReasonInvalidCombatant.Message,
	app.ReasonCityLost.Code:         app.ReasonCityLost.Message,
	app.ReasonNoOfflineTime.Code:    app.ReasonNoOfflineTime.Message,
}

// mapReason 把引擎返回的拒绝 reason 翻译成客户端码与提示。
func mapReason(reason string) (int, string) {
	if msg, ok := reasonMessages[reason]; ok {
		return transport.BizRejected, msg
	}
	return transport.SystemError, "系统繁忙，请稍后重试"
}

// mapTechErr 把 runtime/actor 的技术错误归一为客户端码。
func mapTechErr(ctx context.Context, err error) (int, string) {
	if err == nil {
		return transport.OK, ""
	}

	var re *conquestactor.RuntimeError
	if errors.As(err, &re) {
		transport.SetErrorReason(ctx, re.Message)
		return re.Code, "系统繁忙，请稍后重试"
	}

	transport.SetErrorReason(ctx, err.Error())
	return transport.SystemError, "系统繁忙，请稍后重试"
}
