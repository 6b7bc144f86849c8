package witness

import (
	"fmt"
	"math/big"

	"github.com/yourorg/fiscalzk/circuits"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

// EvaluateProperty computes the transfer-tax witness. A fraudulent price
// ratio or a self-sale still evaluates and the proof carries Valid=0;
// inputs outside the representable ranges are rejected outright.
func EvaluateProperty(in PropertyInputs, p tables.TransferPolicy) (*Bundle, error) {
	if err := checkAmount("originalPrice", in.OriginalPrice); err != nil {
		return nil, err
	}
	if err := checkAmount("currentPrice", in.CurrentPrice); err != nil {
		return nil, err
	}
	if err := checkYears("holdingYears", in.HoldingYears); err != nil {
		return nil, err
	}
	if int(in.PropertyType) >= len(p.RatesBps) {
		return nil, fmt.Errorf("%w: propertyType=%d has no rate (table has %d types)",
			ErrOutOfRange, in.PropertyType, len(p.RatesBps))
	}
	buyer, err := parseFieldElement("buyerId", in.BuyerID)
	if err != nil {
		return nil, err
	}
	seller, err := parseFieldElement("sellerId", in.SellerID)
	if err != nil {
		return nil, err
	}

	holdingBps := min(p.HoldingBpsPerYear*in.HoldingYears, p.HoldingBpsCap)
	rawExemption := holdingBps
	if in.FirstProperty {
		rawExemption += p.FirstPropertyBps
	}
	if in.SeniorCitizen {
		rawExemption += p.SeniorCitizenBps
	}
	exemption := min(rawExemption, tables.BpsDenom)

	gain := uint64(0)
	if in.CurrentPrice > in.OriginalPrice {
		gain = in.CurrentPrice - in.OriginalPrice
	}
	taxableGain := gain * (tables.BpsDenom - exemption) / tables.BpsDenom
	tax := taxableGain * p.RatesBps[in.PropertyType] / tables.BpsDenom

	fraudOK := in.CurrentPrice < 10*in.OriginalPrice
	distinct := buyer.Cmp(seller) != 0
	valid := boolToUint(fraudOK && distinct)
	if valid == 0 {
		log.Warn().Str("event", "validity_flag").
			Str("circuit", "property").
			Bool("fraudOK", fraudOK).Bool("distinctParties", distinct).
			Msg("transfer evaluates as invalid")
	}

	asn := circuits.NewPropertyCircuit(p)
	asn.TransferTax = tax
	asn.Valid = valid
	asn.OriginalPrice = in.OriginalPrice
	asn.CurrentPrice = in.CurrentPrice
	asn.HoldingYears = in.HoldingYears
	asn.PropertyType = in.PropertyType
	asn.FirstProperty = boolToUint(in.FirstProperty)
	asn.SeniorCitizen = boolToUint(in.SeniorCitizen)
	asn.BuyerID = buyer
	asn.SellerID = seller

	signals := []*big.Int{new(big.Int).SetUint64(tax), new(big.Int).SetUint64(valid)}
	return assemble("property", cacheKey(p.Version, p.Fingerprint()), p.Version,
		circuits.NewPropertyCircuit(p), asn, signals)
}
