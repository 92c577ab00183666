package config

import (
	"fmt"
	"os"
	"pos-terminal/internal/common/enum"
	"reflect"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var durationType = reflect.TypeOf(time.Duration(0))

// GetEnv loads .env (if present) and fills Config from the environment.
// Variables without an envDefault tag are required.
func GetEnv() (config *Config, er error) {
	err := godotenv.Load()
	if err != nil {
		_ = godotenv.Load("../../.env")
	}

	config = &Config{}
	v := reflect.ValueOf(config).Elem()
	t := v.Type()

	for i := range make([]struct{}, v.NumField()) {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value, exists := os.LookupEnv(envTag)
		if !exists {
			def, hasDefault := field.Tag.Lookup("envDefault")
			if !hasDefault {
				return nil, fmt.Errorf("environment variable %s not set", envTag)
			}
			value = def
		}

		if err := setField(v.Field(i), value); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", envTag, err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setField(f reflect.Value, value string) error {
	if f.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		f.SetInt(int64(d))
		return nil
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(value)
	case reflect.Int, reflect.Int64:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		f.SetInt(int64(intValue))
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		f.SetBool(boolValue)
	case reflect.Float64:
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		f.SetFloat(floatValue)
	default:
		return fmt.Errorf("unsupported kind %s", f.Kind())
	}
	return nil
}

func (c *Config) validate() error {
	if !c.AppEnv.IsValid() {
		return fmt.Errorf("APP_ENV must be one of local, development, staging, production; got %q", c.AppEnv)
	}
	if !c.PaymentGateway.IsValid() {
		return fmt.Errorf("PAYMENT_GATEWAY must be one of backend, midtrans; got %q", c.PaymentGateway)
	}
	if !c.HandoffMode.IsValid() {
		return fmt.Errorf("HANDOFF_MODE must be one of terminal, direct; got %q", c.HandoffMode)
	}
	if !c.ClearCartPolicy.IsValid() {
		return fmt.Errorf("CLEAR_CART_POLICY must be one of placement, confirmation; got %q", c.ClearCartPolicy)
	}
	if !c.DBDriver.IsValid() {
		return fmt.Errorf("DB_DRIVER must be one of postgres, mysql; got %q", c.DBDriver)
	}
	if c.PaymentGateway == enum.GATEWAY_MIDTRANS && c.MidtransServerKey == "" {
		return fmt.Errorf("MIDTRANS_SERVER_KEY is required when PAYMENT_GATEWAY=midtrans")
	}
	if c.CallTimeout <= 0 || c.FlowTimeout <= 0 {
		return fmt.Errorf("CALL_TIMEOUT and FLOW_TIMEOUT must be positive")
	}
	if c.GuardTTL < c.FlowTimeout+c.CallTimeout {
		return fmt.Errorf("GUARD_TTL (%s) must not be shorter than FLOW_TIMEOUT + CALL_TIMEOUT (%s)", c.GuardTTL, c.FlowTimeout+c.CallTimeout)
	}
	return nil
}
