package checkout

import (
	"net/http"
	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"

	"github.com/samber/lo"
)

const (
	MsgCashReceived   = "Your cash has been successfully received!"
	MsgHandedOff      = "Payment page opened on the checkout display. Complete your payment there."
	MsgHandoffBlocked = "Checkout display blocked! Please allow the checkout display and try again."
	MsgGeneric        = "Something went wrong"
	MsgInProgress     = "An order is already being processed"
	MsgEmptyCart      = "Cart is empty"
)

/*----------- Kind -----------*/

// Kind is the variant of a checkout result.
type Kind string

const (
	FINALIZED           Kind = "FINALIZED"
	HANDED_OFF          Kind = "HANDED_OFF"
	VALIDATION_ERROR    Kind = "VALIDATION_ERROR"
	IN_PROGRESS         Kind = "IN_PROGRESS"
	REMOTE_FAILURE      Kind = "REMOTE_FAILURE"
	COMPENSATED         Kind = "COMPENSATED"
	COMPENSATION_FAILED Kind = "COMPENSATION_FAILED"
)

func (k Kind) StatusCode() int {
	switch k {
	case FINALIZED:
		return http.StatusCreated
	case HANDED_OFF:
		return http.StatusAccepted
	case VALIDATION_ERROR:
		return http.StatusBadRequest
	case IN_PROGRESS:
		return http.StatusConflict
	case REMOTE_FAILURE, COMPENSATED:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (k Kind) IsSuccess() bool {
	return k == FINALIZED || k == HANDED_OFF
}

/*----------- State -----------*/

// State is a step of one order's payment lifecycle.
type State string

const (
	STATE_CREATED             State = "CREATED"
	STATE_FINALIZED           State = "FINALIZED"
	STATE_SESSION_PENDING     State = "SESSION_PENDING"
	STATE_HANDED_OFF          State = "HANDED_OFF"
	STATE_COMPENSATING_DELETE State = "COMPENSATING_DELETE"
)

var transitions = map[State][]State{
	STATE_CREATED:         {STATE_FINALIZED, STATE_SESSION_PENDING},
	STATE_SESSION_PENDING: {STATE_HANDED_OFF, STATE_COMPENSATING_DELETE},
}

func (s State) CanTransitionTo(next State) bool {
	return lo.Contains(transitions[s], next)
}

func (s State) IsTerminal() bool {
	return len(transitions[s]) == 0
}

/*----------- Outcome -----------*/

// Outcome is what a checkout attempt ended with. States lists the lifecycle
// steps the order went through; it is empty when no order was created.
type Outcome struct {
	Kind        Kind                 `json:"kind"`
	Message     string               `json:"message"`
	States      []State              `json:"states,omitempty"`
	Order       *types.Order         `json:"order,omitempty"`
	Handoff     enum.HandoffModeEnum `json:"handoff,omitempty"`
	RedirectURL string               `json:"redirectUrl,omitempty"`
	Err         error                `json:"-"`
}

func (o *Outcome) Response() *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    o.Kind.StatusCode(),
		Message: o.Message,
		Data:    o,
		Error:   o.Err,
	})
}
