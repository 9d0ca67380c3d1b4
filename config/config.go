package config

import (
	"encoding/json"
	"time"

	"github.com/go-errors/errors"
	"github.com/tkanos/gonfig"
	"stellarsplit.app/payment-uri/log"
)

const defaultPort = 28080
const defaultBaseFee = 200
const defaultTransactionTimeout = 60 * time.Second
const defaultQrSize = 256
const defaultLogLevel = "info"

type jsonConfiguration struct {
	Port               int
	FallbackBaseUrl    string
	UseTestApi         *bool
	HorizonUrl         string
	BaseFee            int64
	TransactionTimeout Duration
	QrSize             int
	LogLevel           string
	JaegerUrl          string
	JaegerServiceName  string
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

type StellarConfig struct {
	UseTestApi         bool
	HorizonUrl         string
	BaseFee            int64
	TransactionTimeout time.Duration
}

type JaegerConfig struct {
	Url         string
	ServiceName string
}

type Configuration struct {
	Port int
	// FallbackBaseUrl is the origin used for web fallback links. When empty
	// the origin of the incoming request is used.
	FallbackBaseUrl string
	StellarConfig   StellarConfig
	JaegerConfig    *JaegerConfig
	QrSize          int
	LogLevel        string
}

func DefaultCfg() *Configuration {
	return &Configuration{
		Port: defaultPort,
		StellarConfig: StellarConfig{
			UseTestApi:         true,
			BaseFee:            defaultBaseFee,
			TransactionTimeout: defaultTransactionTimeout,
		},
		QrSize:   defaultQrSize,
		LogLevel: defaultLogLevel,
	}
}

func ParseConfiguration(configFile string) (*Configuration, error) {
	rawConfig := jsonConfiguration{}

	err := gonfig.GetConf(configFile, &rawConfig)
	if err != nil {
		log.Error("Read json config error: ", err)
		return nil, errors.WrapPrefix(err, "reading "+configFile, 0)
	}

	instance := DefaultCfg()
	if rawConfig.Port != 0 {
		instance.Port = rawConfig.Port
	}
	instance.FallbackBaseUrl = rawConfig.FallbackBaseUrl
	if rawConfig.UseTestApi != nil {
		instance.StellarConfig.UseTestApi = *rawConfig.UseTestApi
	}
	instance.StellarConfig.HorizonUrl = rawConfig.HorizonUrl
	if rawConfig.BaseFee != 0 {
		instance.StellarConfig.BaseFee = rawConfig.BaseFee
	}
	if rawConfig.TransactionTimeout.Duration != 0 {
		instance.StellarConfig.TransactionTimeout = rawConfig.TransactionTimeout.Duration
	}
	if rawConfig.QrSize != 0 {
		instance.QrSize = rawConfig.QrSize
	}
	if rawConfig.LogLevel != "" {
		instance.LogLevel = rawConfig.LogLevel
	}
	if rawConfig.JaegerUrl != "" {
		instance.JaegerConfig = &JaegerConfig{
			Url:         rawConfig.JaegerUrl,
			ServiceName: rawConfig.JaegerServiceName,
		}
	}

	if err := instance.Validate(); err != nil {
		return nil, err
	}
	return instance, nil
}

func (c *Configuration) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	if c.StellarConfig.BaseFee < 100 {
		return errors.Errorf("base fee %d is below the network minimum of 100 stroops", c.StellarConfig.BaseFee)
	}
	if c.StellarConfig.TransactionTimeout < time.Second {
		return errors.Errorf("transaction timeout %v is too short", c.StellarConfig.TransactionTimeout)
	}
	if c.QrSize < 64 {
		return errors.Errorf("qr size %d is too small", c.QrSize)
	}
	return nil
}

// ParseConfig reads the configuration from the first argument, or from
// config.json when no argument is given.
func ParseConfig(args []string) (*Configuration, error) {
	configPath := "config.json"
	if len(args) >= 1 && args[0] != "" {
		configPath = args[0]
	}
	return ParseConfiguration(configPath)
}
