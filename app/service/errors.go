package service

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrPartnerNotFound = errors.New("partner not found")
	ErrPartnerInactive = errors.New("partner is inactive")
	ErrNoFeePolicy     = errors.New("no applicable fee policy")
)
