package sms

import (
	"errors"
	"fmt"
	"time"

	"github.com/quiz-framework/quiz-backend/pkg/messaging/types"
)

var (
	SmsGatewayConfig *types.SMSGatewayConfig
)

func Init(
	smsGatewayConfig *types.SMSGatewayConfig,
) {
	SmsGatewayConfig = smsGatewayConfig
}

// SendOTPSMS delivers a verification code to the phone number. The code was
// already stored when this is called; a failure here must not undo the store,
// the caller reports the partial success instead.
func SendOTPSMS(to string, code string, expiresAt time.Time) error {
	if SmsGatewayConfig == nil {
		return errors.New("connection to sms gateway not initialized")
	}

	validFor := time.Until(expiresAt).Round(time.Minute)
	content := fmt.Sprintf("Your verification code is %s. It is valid for %s.", code, validFor)

	return runSMSsending(to, content, SmsGatewayConfig.From)
}
