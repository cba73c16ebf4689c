package services

import (
	"fmt"

	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/offer"
	"freight/internal/pkg/errs"
)

// OfferAcceptance applies the acceptance cascade of an expedition: the chosen offer
// is accepted, the expedition is assigned and every other pending offer is rejected.
//
// The cascade is planned from the snapshot first and applied only when every step is
// legal, so a failure leaves all aggregates untouched.
type OfferAcceptance struct{}

func NewOfferAcceptance() OfferAcceptance {
	return OfferAcceptance{}
}

// Accept runs the cascade.
//
// Parameters:
//   - exp: the expedition, loaded under lock
//   - chosen: the offer to accept; it must belong to exp
//   - offers: every offer of exp, chosen included or not
//
// Returns the offers that were rejected by the fan-out.
func (OfferAcceptance) Accept(
	exp *expedition.Expedition,
	chosen *offer.Offer,
	offers []*offer.Offer,
) ([]*offer.Offer, error) {
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	if err := chosen.Validate(); err != nil {
		return nil, err
	}
	if !chosen.ExpeditionID().IsEqual(exp.ID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("offer",
			fmt.Errorf("offer %s does not belong to expedition %s", chosen.ID(), exp.ID()))
	}

	if !offer.Transitions().Can(chosen.Status(), offer.Accept) {
		return nil, errs.NewIllegalTransitionError("offer", chosen.Status().String(), offer.Accept.String())
	}
	if !expedition.Transitions().Can(exp.Status(), expedition.Assign) {
		return nil, errs.NewIllegalTransitionError("expedition", exp.Status().String(), expedition.Assign.String())
	}

	var toReject []*offer.Offer
	for _, o := range offers {
		if o.ID().IsEqual(chosen.ID()) {
			continue
		}
		switch o.Status() {
		case offer.Accepted:
			return nil, errs.NewIllegalTransitionError("expedition", exp.Status().String(), expedition.Assign.String())
		case offer.Pending:
			toReject = append(toReject, o)
		}
	}

	if err := chosen.Accept(); err != nil {
		return nil, err
	}
	if err := exp.Assign(); err != nil {
		return nil, err
	}
	for _, o := range toReject {
		if err := o.Reject(); err != nil {
			return nil, err
		}
	}
	return toReject, nil
}
