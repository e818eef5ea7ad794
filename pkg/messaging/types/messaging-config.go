package types

import "time"

type SMSGatewayConfig struct {
	URL            string        `json:"url" yaml:"url"`
	APIKey         string        `json:"api_key" yaml:"api_key"`
	From           string        `json:"from" yaml:"from"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

type MessagingConfigs struct {
	SMSConfig *SMSGatewayConfig `json:"sms_config" yaml:"sms_config"`
}
