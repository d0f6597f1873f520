package config

import (
	"testing"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require := require.New(t)

	c, err := Load()
	require.NoError(err)
	require.Equal("8080", c.Port)
	require.Equal("devnet", c.SolanaCluster)
	require.Equal("Dummy.png", c.ImageFileName)
	require.Equal(uint64(1000000000), c.MaxSupply)
	require.Equal(500*time.Millisecond, c.ConfirmPollInterval)
}

func TestLoadRejectsUnknownCluster(t *testing.T) {
	t.Setenv("SOLANA_CLUSTER", "moonnet")

	_, err := Load()
	require.ErrorContains(t, err, "moonnet")
}

func TestClusterURL(t *testing.T) {
	require := require.New(t)

	url, err := ClusterURL("devnet", "")
	require.NoError(err)
	require.Equal(rpc.DevNet_RPC, url)

	url, err = ClusterURL("devnet", "http://127.0.0.1:8899")
	require.NoError(err)
	require.Equal("http://127.0.0.1:8899", url)
}

func TestPasswordRoundTrip(t *testing.T) {
	require := require.New(t)

	SetPassword([]byte("dev"))
	out, err := GetWalletPasswordBytes()
	require.NoError(err)
	require.Equal([]byte("dev"), out)

	// caller zeroing its copy must not affect the stored password
	clear(out)
	again, err := GetWalletPasswordBytes()
	require.NoError(err)
	require.Equal([]byte("dev"), again)
}
