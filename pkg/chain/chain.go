package chain

import (
	"fmt"
	"strings"
)

// Network describes one of the EVM networks the platform settles USDT on.
// The network is a first-class parameter of every balance read and transfer,
// never a module-level constant.
type Network struct {
	Name         string
	ChainID      int64
	USDTContract string
	USDTDecimals int
	NativeSymbol string
}

var (
	Ethereum = Network{
		Name:         "ethereum",
		ChainID:      1,
		USDTContract: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		USDTDecimals: 6,
		NativeSymbol: "ETH",
	}
	Polygon = Network{
		Name:         "polygon",
		ChainID:      137,
		USDTContract: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F",
		USDTDecimals: 6,
		NativeSymbol: "MATIC",
	}
	Arbitrum = Network{
		Name:         "arbitrum",
		ChainID:      42161,
		USDTContract: "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9",
		USDTDecimals: 6,
		NativeSymbol: "ETH",
	}
	BSC = Network{
		Name:         "bsc",
		ChainID:      56,
		USDTContract: "0x55d398326f99059fF775485246999027B3197955",
		USDTDecimals: 18,
		NativeSymbol: "BNB",
	}
)

var supportedNetworks = map[string]Network{
	Ethereum.Name: Ethereum,
	Polygon.Name:  Polygon,
	Arbitrum.Name: Arbitrum,
	BSC.Name:      BSC,
}

// FromName returns the network matching the given name, case-insensitive.
func FromName(name string) (Network, error) {
	net, ok := supportedNetworks[strings.ToLower(name)]
	if !ok {
		return Network{}, fmt.Errorf("unsupported network: %s", name)
	}
	return net, nil
}

// Names returns the names of all supported networks.
func Names() []string {
	return []string{Ethereum.Name, Polygon.Name, Arbitrum.Name, BSC.Name}
}
