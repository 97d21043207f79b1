package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	btcdwire "github.com/btcsuite/btcd/wire"
)

// Network identifies which chain parameters an address or script was encoded for.
type Network uint32

const (
	MainNet    Network = 0xe8f3e1e3
	TestNet    Network = 0xf4f3e5f4
	InvalidNet Network = 0x00000000
)

var (
	MainNetParams chaincfg.Params
	TestNetParams chaincfg.Params
)

func NetworkFromString(name string) Network {
	switch name {
	case "mainnet":
		return MainNet
	case "testnet":
		return TestNet
	}
	return InvalidNet
}

func NetworkName(net Network) string {
	switch net {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	}
	return "testnet"
}

func init() {
	MainNetParams = chaincfg.MainNetParams
	MainNetParams.Name = "mainnet"
	MainNetParams.Net = btcdwire.BitcoinNet(MainNet)
	if err := chaincfg.Register(&MainNetParams); err != nil {
		fmt.Printf("WARNING failed to register MainNetParams : %s\n", err)
	}

	TestNetParams = chaincfg.TestNet3Params
	TestNetParams.Name = "testnet"
	TestNetParams.Net = btcdwire.BitcoinNet(TestNet)
	if err := chaincfg.Register(&TestNetParams); err != nil {
		fmt.Printf("WARNING failed to register TestNetParams : %s\n", err)
	}
}
