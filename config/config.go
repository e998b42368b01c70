package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/otcdex/otc-daemon/pkg/chain"
)

const (
	// BackendEndpointKey is the base url of the trading backend REST API
	BackendEndpointKey = "BACKEND_ENDPOINT"
	// BackendRequestTimeoutKey are the milliseconds to wait for HTTP responses before timeouts
	BackendRequestTimeoutKey = "BACKEND_REQUEST_TIMEOUT"
	// BackendRequestsPerSecondKey caps the rate of requests sent to the backend
	BackendRequestsPerSecondKey = "BACKEND_REQUESTS_PER_SECOND"
	// WalletBridgeEndpointKey is the url of the local signer daemon holding the seller keys
	WalletBridgeEndpointKey = "WALLET_BRIDGE_ENDPOINT"
	// WalletBridgeRequestTimeoutKey are the milliseconds to wait for signer daemon responses
	WalletBridgeRequestTimeoutKey = "WALLET_BRIDGE_REQUEST_TIMEOUT"
	// WalletAddressKey is the seller wallet address orders are filtered against
	WalletAddressKey = "WALLET_ADDRESS"
	// EscrowAddressKey is the seller escrow wallet address, watched for token and gas balances
	EscrowAddressKey = "ESCROW_ADDRESS"
	// StoreCodeKey scopes the order feed to a single store
	StoreCodeKey = "STORE_CODE"
	// SecondaryTokenContractKey is an optional second token contract watched on the seller wallet
	SecondaryTokenContractKey = "SECONDARY_TOKEN_CONTRACT"
	// SecondaryTokenSymbolKey labels the secondary token balance
	SecondaryTokenSymbolKey = "SECONDARY_TOKEN_SYMBOL"
	// NetworkKey is the EVM network to settle on. One of "ethereum", "polygon", "arbitrum", "bsc"
	NetworkKey = "NETWORK"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// FeedIntervalKey is the interval in milliseconds between order feed refreshes
	FeedIntervalKey = "FEED_INTERVAL"
	// BalanceIntervalKey is the interval in milliseconds between wallet balance refreshes
	BalanceIntervalKey = "BALANCE_INTERVAL"
	// RateIntervalKey is the interval in milliseconds between market rate flushes
	RateIntervalKey = "RATE_INTERVAL"
	// FeedPageLimitKey is the number of orders pulled per feed refresh
	FeedPageLimitKey = "FEED_PAGE_LIMIT"
	// TradeExpiryTimeKey is the duration in seconds after which an accepted trade without payment is considered expired
	TradeExpiryTimeKey = "TRADE_EXPIRY_TIME"
	// JournalRetryIntervalKey is the interval in milliseconds between confirmation journal sweeps
	JournalRetryIntervalKey = "JOURNAL_RETRY_INTERVAL"
	// JournalBaseBackoffKey is the base backoff in milliseconds applied after a failed recording
	JournalBaseBackoffKey = "JOURNAL_BASE_BACKOFF"
	// JournalMaxBackoffKey caps the backoff in milliseconds between recording retries
	JournalMaxBackoffKey = "JOURNAL_MAX_BACKOFF"
	// JournalMaxAttemptsKey is the number of recording attempts before an entry needs manual care
	JournalMaxAttemptsKey = "JOURNAL_MAX_ATTEMPTS"
	// MetricsListeningPortKey is the port where the prometheus metrics endpoint will listen on
	MetricsListeningPortKey = "METRICS_LISTENING_PORT"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic daemon statistics
	StatsIntervalKey = "STATS_INTERVAL"
	// NoRateFeedKey disables the external market rate feeder
	NoRateFeedKey = "NO_RATE_FEED"

	DbLocation       = "db"
	ProfilerLocation = "stats"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("otc-daemon", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("OTC")
	vip.AutomaticEnv()

	vip.SetDefault(BackendEndpointKey, "http://localhost:4000")
	vip.SetDefault(BackendRequestTimeoutKey, 15000)
	vip.SetDefault(BackendRequestsPerSecondKey, 10)
	vip.SetDefault(WalletBridgeEndpointKey, "http://localhost:7345")
	vip.SetDefault(WalletBridgeRequestTimeoutKey, 30000)
	vip.SetDefault(NetworkKey, chain.Polygon.Name)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(FeedIntervalKey, 3000)
	vip.SetDefault(BalanceIntervalKey, 5000)
	vip.SetDefault(RateIntervalKey, 5000)
	vip.SetDefault(FeedPageLimitKey, 100)
	vip.SetDefault(TradeExpiryTimeKey, 86400)
	vip.SetDefault(JournalRetryIntervalKey, 10000)
	vip.SetDefault(JournalBaseBackoffKey, 5000)
	vip.SetDefault(JournalMaxBackoffKey, 300000)
	vip.SetDefault(JournalMaxAttemptsKey, 20)
	vip.SetDefault(MetricsListeningPortKey, 9090)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)
	vip.SetDefault(NoRateFeedKey, false)
	vip.SetDefault(SecondaryTokenSymbolKey, "TOKEN")

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetFloat ...
func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

//GetNetwork ...
func GetNetwork() chain.Network {
	net, _ := chain.FromName(vip.GetString(NetworkKey))
	return net
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	if _, err := chain.FromName(GetString(NetworkKey)); err != nil {
		return fmt.Errorf(
			"network must be one of '%s'",
			strings.Join(chain.Names(), "', '"),
		)
	}

	backendEndpoint := GetString(BackendEndpointKey)
	if _, err := url.Parse(backendEndpoint); err != nil {
		return fmt.Errorf("backend endpoint is not a valid url: %s", err)
	}

	bridgeEndpoint := GetString(WalletBridgeEndpointKey)
	if _, err := url.Parse(bridgeEndpoint); err != nil {
		return fmt.Errorf("wallet bridge endpoint is not a valid url: %s", err)
	}

	if limit := GetInt(FeedPageLimitKey); limit <= 0 {
		return fmt.Errorf("feed page limit must be a positive number")
	}

	if attempts := GetInt(JournalMaxAttemptsKey); attempts <= 0 {
		return fmt.Errorf("journal max attempts must be a positive number")
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
