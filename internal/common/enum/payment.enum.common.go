package enum

import "strings"

/*----------- PaymentMethodEnum -----------*/

type PaymentMethodEnum string

const (
	CASH PaymentMethodEnum = "CASH"
	UPI  PaymentMethodEnum = "UPI"
)

// ParsePaymentMethod accepts the lower-case button values used by terminals.
func ParsePaymentMethod(s string) PaymentMethodEnum {
	return PaymentMethodEnum(strings.ToUpper(strings.TrimSpace(s)))
}

func (e PaymentMethodEnum) ToString() string {
	switch e {
	case CASH:
		return "CASH"
	case UPI:
		return "UPI"
	}
	return ""
}

func (e PaymentMethodEnum) IsValid() bool {
	switch e {
	case CASH, UPI:
		return true
	}
	return false
}

// IsElectronic reports whether the method needs an external checkout session.
func (e PaymentMethodEnum) IsElectronic() bool {
	return e.IsValid() && e != CASH
}

/*----------- RoleEnum -----------*/

type RoleEnum string

const (
	ROLE_ADMIN RoleEnum = "ADMIN"
	ROLE_USER  RoleEnum = "USER"
)

func (e RoleEnum) ToString() string {
	switch e {
	case ROLE_ADMIN:
		return "ADMIN"
	case ROLE_USER:
		return "USER"
	}
	return ""
}

func (e RoleEnum) IsValid() bool {
	switch e {
	case ROLE_ADMIN, ROLE_USER:
		return true
	}
	return false
}

/*----------- GatewayEnum -----------*/

type GatewayEnum string

const (
	GATEWAY_BACKEND  GatewayEnum = "backend"
	GATEWAY_MIDTRANS GatewayEnum = "midtrans"
)

func (e GatewayEnum) IsValid() bool {
	switch e {
	case GATEWAY_BACKEND, GATEWAY_MIDTRANS:
		return true
	}
	return false
}

/*----------- HandoffModeEnum -----------*/

type HandoffModeEnum string

const (
	HANDOFF_TERMINAL HandoffModeEnum = "terminal"
	HANDOFF_DIRECT   HandoffModeEnum = "direct"
)

func (e HandoffModeEnum) IsValid() bool {
	switch e {
	case HANDOFF_TERMINAL, HANDOFF_DIRECT:
		return true
	}
	return false
}

/*----------- ClearCartPolicyEnum -----------*/

type ClearCartPolicyEnum string

const (
	CLEAR_ON_PLACEMENT    ClearCartPolicyEnum = "placement"
	CLEAR_ON_CONFIRMATION ClearCartPolicyEnum = "confirmation"
)

func (e ClearCartPolicyEnum) IsValid() bool {
	switch e {
	case CLEAR_ON_PLACEMENT, CLEAR_ON_CONFIRMATION:
		return true
	}
	return false
}
