package enums

import "fmt"

// PaymentMethod is the settlement channel chosen at checkout.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodWallet PaymentMethod = "wallet"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCOD,
	PaymentMethodOnline,
	PaymentMethodWallet,
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}

// PaymentGateway identifies the provider behind a recorded payment attempt.
type PaymentGateway string

const (
	PaymentGatewayCOD      PaymentGateway = "cod"
	PaymentGatewayRazorpay PaymentGateway = "razorpay"
	PaymentGatewayStripe   PaymentGateway = "stripe"
	PaymentGatewayPaypal   PaymentGateway = "paypal"
)

var validPaymentGateways = []PaymentGateway{
	PaymentGatewayCOD,
	PaymentGatewayRazorpay,
	PaymentGatewayStripe,
	PaymentGatewayPaypal,
}

// IsValid reports whether the value is a known PaymentGateway.
func (p PaymentGateway) IsValid() bool {
	for _, candidate := range validPaymentGateways {
		if candidate == p {
			return true
		}
	}
	return false
}

// PaymentRecordStatus is the per-attempt outcome reported by a gateway.
type PaymentRecordStatus string

const (
	PaymentRecordStatusPending   PaymentRecordStatus = "pending"
	PaymentRecordStatusSuccess   PaymentRecordStatus = "success"
	PaymentRecordStatusFailed    PaymentRecordStatus = "failed"
	PaymentRecordStatusCancelled PaymentRecordStatus = "cancelled"
	PaymentRecordStatusRefunded  PaymentRecordStatus = "refunded"
)

var validPaymentRecordStatuses = []PaymentRecordStatus{
	PaymentRecordStatusPending,
	PaymentRecordStatusSuccess,
	PaymentRecordStatusFailed,
	PaymentRecordStatusCancelled,
	PaymentRecordStatusRefunded,
}

// IsValid reports whether the value is a known PaymentRecordStatus.
func (p PaymentRecordStatus) IsValid() bool {
	for _, candidate := range validPaymentRecordStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}
