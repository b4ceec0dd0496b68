package flag

import (
	"context"
	"testing"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invocation struct {
	flags model.Flags
	cmd   *model.Command
}

func execute(t *testing.T, args ...string) (*invocation, error) {
	t.Helper()

	var got *invocation
	root := NewService().Command(func(ctx context.Context, flags model.Flags, cmd *model.Command) error {
		got = &invocation{flags: flags, cmd: cmd}
		return nil
	})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return got, err
}

func TestRootStartsShell(t *testing.T) {
	got, err := execute(t, "--api-url", "http://pricing:5000", "--no-banner")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.cmd)
	assert.Equal(t, "http://pricing:5000", got.flags.APIURL)
	assert.True(t, got.flags.NoBanner)
}

func TestAddCommand(t *testing.T) {
	got, err := execute(t, "add", "--service", "rds", "--region", "EU (Ireland)",
		"--set", "instanceType=db.m5.large", "--set", "quantity=2", "--session", "abc")
	require.NoError(t, err)

	assert.Equal(t, model.ActionAdd, got.cmd.Action)
	assert.Equal(t, "rds", got.flags.Service)
	assert.Equal(t, "EU (Ireland)", got.flags.Region)
	assert.Equal(t, "abc", got.flags.Session)
	assert.Equal(t, []string{"instanceType=db.m5.large", "quantity=2"}, got.flags.Fields)
}

func TestQuoteDefaultsToEC2(t *testing.T) {
	got, err := execute(t, "quote")
	require.NoError(t, err)
	assert.Equal(t, model.ActionQuote, got.cmd.Action)
	assert.Equal(t, "ec2", got.flags.Service)
}

func TestRemoveAndClear(t *testing.T) {
	got, err := execute(t, "remove", "1234")
	require.NoError(t, err)
	assert.Equal(t, &model.Command{Action: model.ActionRemove, Arg: "1234"}, got.cmd)

	_, err = execute(t, "remove")
	assert.Error(t, err)

	got, err = execute(t, "clear", "--yes")
	require.NoError(t, err)
	assert.Equal(t, model.ActionClear, got.cmd.Action)
	assert.True(t, got.flags.Yes)
}

func TestExportDir(t *testing.T) {
	got, err := execute(t, "export", "--dir", "/tmp/reports")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reports", got.cmd.Arg)
}

func TestMalformedSet(t *testing.T) {
	got, err := execute(t, "quote", "--set", "quantity")
	assert.ErrorIs(t, err, ErrMalformedField)
	assert.Nil(t, got)
}

func TestParseFields(t *testing.T) {
	values, err := ParseFields([]string{"storageClass=General Purpose", "storageGB = 250", "storageGB=300"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"storageClass": "General Purpose", "storageGB": "300"}, values)

	_, err = ParseFields([]string{"=5"})
	assert.ErrorIs(t, err, ErrMalformedField)
}
