package transfer

import (
	"fmt"

	"Corebank/config"
	"Corebank/internal/domain/ledger"
	appErrors "Corebank/internal/errors"
)

type Channel string

const (
	ChannelNEFT Channel = "NEFT"
	ChannelRTGS Channel = "RTGS"
	ChannelIMPS Channel = "IMPS"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelNEFT, ChannelRTGS, ChannelIMPS:
		return true
	}
	return false
}

func (c Channel) Fee(cfg config.TransferConfig) float64 {
	switch c {
	case ChannelNEFT:
		return cfg.NEFTFee
	case ChannelRTGS:
		return cfg.RTGSFee
	case ChannelIMPS:
		return cfg.IMPSFee
	}
	return 0
}

// ValidateAmount enforces the channel's amount window: RTGS has a floor for
// high-value transfers, IMPS a ceiling for instant ones, NEFT neither.
func (c Channel) ValidateAmount(cfg config.TransferConfig, amount float64) error {
	switch c {
	case ChannelRTGS:
		if amount < cfg.RTGSMinAmount {
			return appErrors.ErrInvalidTransferAmount.
				WithMessage(fmt.Sprintf("RTGS transfers require at least %.2f", cfg.RTGSMinAmount)).
				WithDetails(map[string]interface{}{"minimumAmount": cfg.RTGSMinAmount})
		}
	case ChannelIMPS:
		if amount > cfg.IMPSMaxAmount {
			return appErrors.ErrInvalidTransferAmount.
				WithMessage(fmt.Sprintf("IMPS transfers are capped at %.2f", cfg.IMPSMaxAmount)).
				WithDetails(map[string]interface{}{"maximumAmount": cfg.IMPSMaxAmount})
		}
	}
	return nil
}

func (c Channel) debitType() ledger.Type {
	switch c {
	case ChannelNEFT:
		return ledger.TypeNEFTDebit
	case ChannelRTGS:
		return ledger.TypeRTGSDebit
	default:
		return ledger.TypeIMPSDebit
	}
}

func (c Channel) creditType() ledger.Type {
	switch c {
	case ChannelNEFT:
		return ledger.TypeNEFTCredit
	case ChannelRTGS:
		return ledger.TypeRTGSCredit
	default:
		return ledger.TypeIMPSCredit
	}
}
