package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetWalletPasswordBytes()
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	SolanaCluster string `envconfig:"SOLANA_CLUSTER" default:"devnet"`
	SolanaRPCURL  string `envconfig:"SOLANA_RPC_URL"`
	WalletFile    string `envconfig:"SOLANA_WALLET_FILE"`

	// KeystoreScryptN is the key derivation cost of keystores created by POST /wallet/generate
	KeystoreScryptN int `envconfig:"KEYSTORE_SCRYPT_N" default:"262144"`

	ImagesDir           string `envconfig:"NFT_IMAGES_DIR" default:"./assets"`
	ImageFileName       string `envconfig:"NFT_IMAGE_FILENAME" default:"Dummy.png"`
	MaxSupply           uint64 `envconfig:"NFT_MAX_SUPPLY" default:"1000000000"`
	MintFundingLamports uint64 `envconfig:"NFT_MINT_FUNDING_LAMPORTS" default:"0"`

	MediaDir     string `envconfig:"MEDIA_DIR" default:"./media"`
	MediaBaseURL string `envconfig:"MEDIA_BASE_URL" default:"http://localhost:8080/media"`
	StoreDir     string `envconfig:"STORE_DIR" default:"./data/tokens"`

	ConfirmPollInterval time.Duration `envconfig:"CONFIRM_POLL_INTERVAL" default:"500ms"`
	ConfirmTimeout      time.Duration `envconfig:"CONFIRM_TIMEOUT" default:"2m"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads a fresh Config from the environment without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if _, err := ClusterURL(c.SolanaCluster, c.SolanaRPCURL); err != nil {
		return nil, err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletFile returns path to .cwt keystore from configuration
func GetWalletFile() string {
	return Get().WalletFile
}

// GetSolanaRPCURL returns the RPC URL of the configured cluster
func GetSolanaRPCURL() string {
	url, _ := ClusterURL(Get().SolanaCluster, Get().SolanaRPCURL)
	return url
}

// ClusterURL resolves a cluster name to its RPC endpoint. A non-empty override wins.
func ClusterURL(cluster, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	switch cluster {
	case "devnet":
		return rpc.DevNet_RPC, nil
	case "testnet":
		return rpc.TestNet_RPC, nil
	case "mainnet-beta", "mainnet":
		return rpc.MainNetBeta_RPC, nil
	case "localnet":
		return rpc.LocalNet_RPC, nil
	default:
		return "", fmt.Errorf("unknown SOLANA_CLUSTER %q", cluster)
	}
}

// NewLogger builds the production JSON logger at the given level
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	SetPassword(raw)
	clear(raw)
	return nil
}

// SetPassword stores a copy of the wallet password in memory
func SetPassword(raw []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
}

// GetWalletPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
