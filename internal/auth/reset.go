package auth

import (
	"context"
	"errors"
	"sync"
)

// Password reset walks three steps in order; each step only unlocks when
// the previous one succeeded.
type ResetStep int

const (
	StepRequestOTP ResetStep = iota
	StepVerifyOTP
	StepNewPassword
)

func (s ResetStep) String() string {
	switch s {
	case StepRequestOTP:
		return "request_otp"
	case StepVerifyOTP:
		return "verify_otp"
	case StepNewPassword:
		return "new_password"
	default:
		return "unknown"
	}
}

var ErrResetOrder = errors.New("reset steps must be completed in order")

// ResetFlow is the OTP password-reset state machine for one console
// session. The email and verified OTP are carried forward so the final
// step can submit all three fields.
type ResetFlow struct {
	mu     sync.Mutex
	client Client
	step   ResetStep
	email  string
	otp    string
}

func NewResetFlow(client Client) *ResetFlow {
	return &ResetFlow{client: client}
}

// Step reports the stage the flow is waiting on.
func (f *ResetFlow) Step() ResetStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// RequestOTP starts (or restarts) the flow for the given email.
func (f *ResetFlow) RequestOTP(ctx context.Context, email string) (string, error) {
	body := struct {
		Email string `json:"email"`
	}{Email: email}

	var resp messageResponse
	if err := f.client.Post(ctx, "/request-reset", body, &resp); err != nil {
		return "", err
	}

	f.mu.Lock()
	f.step = StepVerifyOTP
	f.email = email
	f.otp = ""
	f.mu.Unlock()

	if resp.Message == "" {
		resp.Message = "OTP sent to your email!"
	}
	return resp.Message, nil
}

// VerifyOTP checks the code against the email from step one. A wrong
// code keeps the flow on this step for another attempt.
func (f *ResetFlow) VerifyOTP(ctx context.Context, otp string) (string, error) {
	f.mu.Lock()
	if f.step != StepVerifyOTP {
		f.mu.Unlock()
		return "", ErrResetOrder
	}
	email := f.email
	f.mu.Unlock()

	body := struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}{Email: email, OTP: otp}

	var resp messageResponse
	if err := f.client.Post(ctx, "/verify-otp", body, &resp); err != nil {
		return "", err
	}

	f.mu.Lock()
	f.step = StepNewPassword
	f.otp = otp
	f.mu.Unlock()
	return "OTP verified! Please enter your new password.", nil
}

// ResetPassword submits the new password along with the verified email
// and OTP, then resets the flow so it can be run again.
func (f *ResetFlow) ResetPassword(ctx context.Context, newPassword string) (string, error) {
	f.mu.Lock()
	if f.step != StepNewPassword {
		f.mu.Unlock()
		return "", ErrResetOrder
	}
	email, otp := f.email, f.otp
	f.mu.Unlock()

	body := struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}{Email: email, OTP: otp, NewPassword: newPassword}

	var resp messageResponse
	if err := f.client.Post(ctx, "/reset-password", body, &resp); err != nil {
		return "", err
	}

	f.mu.Lock()
	f.step = StepRequestOTP
	f.email = ""
	f.otp = ""
	f.mu.Unlock()

	if resp.Message == "" {
		resp.Message = "Password reset successful!"
	}
	return resp.Message, nil
}
