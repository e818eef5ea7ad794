package sms

import (
	"errors"
	"log/slog"

	httpclient "github.com/quiz-framework/quiz-backend/pkg/http-client"
)

type SMSTo struct {
	Number string `json:"number"`
}

type SMSBody struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type SingleSMS struct {
	AllowedChannels []string `json:"allowedChannels"`
	From            string   `json:"from"`
	To              []SMSTo  `json:"to"`
	Body            SMSBody  `json:"body"`
}

type SMSAuth struct {
	Producttoken string `json:"producttoken"`
}

type SMSSendingReq struct {
	Messages struct {
		Authentication SMSAuth     `json:"authentication"`
		Msg            []SingleSMS `json:"msg"`
	} `json:"messages"`
}

func runSMSsending(to string, message string, from string) error {
	if SmsGatewayConfig == nil || SmsGatewayConfig.URL == "" {
		return errors.New("connection to sms gateway not initialized")
	}

	payload := SMSSendingReq{
		Messages: struct {
			Authentication SMSAuth     `json:"authentication"`
			Msg            []SingleSMS `json:"msg"`
		}{
			Authentication: SMSAuth{
				Producttoken: SmsGatewayConfig.APIKey,
			},
			Msg: []SingleSMS{
				{
					AllowedChannels: []string{"SMS"},
					From:            from,
					To: []SMSTo{
						{
							Number: to,
						},
					},
					Body: SMSBody{
						Type:    "auto",
						Content: message,
					},
				},
			},
		},
	}

	client := httpclient.ClientConfig{
		RootURL: SmsGatewayConfig.URL,
		Timeout: SmsGatewayConfig.RequestTimeout,
	}

	res, err := client.RunHTTPcall("", payload)
	if err != nil {
		return err
	}

	errorCode, ok := res["errorCode"]
	if !ok {
		slog.Error("no error code in response")
		return errors.New("no error code in response")
	}

	errorCodeFloat, ok := errorCode.(float64)
	if !ok {
		slog.Error("error code is not a number")
		return errors.New("error code is not a number")
	}
	if int(errorCodeFloat) != 0 {
		slog.Error("sms gateway returned error", slog.Int("errorCode", int(errorCodeFloat)))
		return errors.New("sms gateway returned error")
	}

	return nil
}
