package audit

import (
	"context"

	"github.com/donorhub/donorhub/pkg/log"
)

// Audit actions.
const (
	ActionRegister       = "auth.register"
	ActionLogin          = "auth.login"
	ActionLoginFailed    = "auth.login_failed"
	ActionSendOTP        = "auth.send_otp"
	ActionDonorRegister  = "donor.register"
	ActionRequestCreate  = "request.create"
	ActionRequestApprove = "request.approve"
	ActionRequestReject  = "request.reject"
	ActionJoinRoom       = "chat.join_room"
	ActionLeaveRoom      = "chat.leave_room"
	ActionSendMessage    = "chat.send_message"
	ActionDisconnect     = "chat.disconnect"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, userID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Msg(msg)
}

// LogWithDetail emits an audit log with extra detail field.
func LogWithDetail(ctx context.Context, action string, userID string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(FieldDetail, detail).
		Msg(msg)
}
