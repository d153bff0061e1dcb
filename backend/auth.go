package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/shomrim/patrol-cad-client/models"
)

// go generate: mockery --name AuthAPI

// AuthAPI contains the phone + OTP login endpoints.
type AuthAPI interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, otp string) (*models.User, bool, error)
}

type otpRequest struct {
	PhoneNumber string `json:"phone_number"`
	CountryCode string `json:"country_code"`
	OTP         string `json:"otp,omitempty"`
}

type verifyOTPResponse struct {
	Success         bool         `json:"success"`
	Message         string       `json:"message"`
	User            *models.User `json:"user"`
	IsReturningUser bool         `json:"is_returning_user"`
	Error           string       `json:"error"`
}

// SendOTP asks the backend to text a one-time code to the phone number.
func (c *Client) SendOTP(ctx context.Context, phone string) error {
	body := otpRequest{PhoneNumber: phone, CountryCode: c.countryCode}
	var resp verifyOTPResponse
	if err := c.send(ctx, "send otp", http.MethodPost, "/api/send-otp", body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &models.TransportError{Op: "send otp", Err: errors.New(resp.Error)}
	}
	return nil
}

// VerifyOTP checks the entered code. For a returning user the backend
// includes their member record; a nil user with no error means the number
// verified but has not registered yet.
func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) (*models.User, bool, error) {
	body := otpRequest{PhoneNumber: phone, CountryCode: c.countryCode, OTP: otp}
	var resp verifyOTPResponse
	if err := c.send(ctx, "verify otp", http.MethodPost, "/api/verify-otp", body, &resp); err != nil {
		var te *models.TransportError
		if errors.As(err, &te) && te.StatusCode == http.StatusBadRequest {
			return nil, false, &models.ValidationError{Field: "otp", Reason: "invalid or expired code"}
		}
		return nil, false, err
	}
	if !resp.Success {
		return nil, false, &models.ValidationError{Field: "otp", Reason: resp.Error}
	}
	return resp.User, resp.IsReturningUser, nil
}
