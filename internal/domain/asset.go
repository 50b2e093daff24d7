package domain

import "time"

// AssetType classifies an asset.
type AssetType string

const (
	AssetFiat   AssetType = "fiat"
	AssetCrypto AssetType = "crypto"
	AssetMetal  AssetType = "metal"
	AssetStock  AssetType = "stock"
	AssetFund   AssetType = "fund"
)

var validAssetTypes = map[AssetType]bool{
	AssetFiat:   true,
	AssetCrypto: true,
	AssetMetal:  true,
	AssetStock:  true,
	AssetFund:   true,
}

// IsValid checks if the asset type is known.
func (t AssetType) IsValid() bool {
	return validAssetTypes[t]
}

// Asset is a fungible unit of value identified by a stable symbol.
type Asset struct {
	CreatedAt time.Time
	ID        string
	Symbol    string
	Name      string
	Type      AssetType
}
