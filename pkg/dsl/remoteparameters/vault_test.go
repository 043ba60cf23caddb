package remoteparameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settingskit/pkg/dsl"
	"settingskit/pkg/dsl/dsltest"
)

func TestHashiCorpVaultParameter(t *testing.T) {
	var params dsl.RemoteParameters
	p := AddHashiCorpVaultParameter(&params, "env.DB_PASSWORD", func(p *HashiCorpVaultParameter) {
		p.Query.Set("secret/data/db!/password")
		p.VaultID.Set("vault-prod")
	})

	require.Equal(t, 1, params.Len())
	assert.Equal(t, "env.DB_PASSWORD", dsl.RemoteParameterBase(params.Items()[0]).Name)
	assert.Equal(t, "hashicorp-vault", p.Type())
	assert.Equal(t, "vault-prod", p.Namespace.Value())
	assert.Equal(t, []dsl.Param{
		{Name: "teamcity_hashicorp_vault_vaultQuery", Value: "secret/data/db!/password"},
		{Name: "teamcity_hashicorp_vault_namespace", Value: "vault-prod"},
	}, p.Params().All())
}

func TestHashiCorpVaultParameter_Mandatory(t *testing.T) {
	newParam := func() dsl.Definition { return NewHashiCorpVaultParameter(nil) }
	dsltest.AssertMandatory(t, newParam, "query")
	dsltest.AssertRoundTrip(t, newParam())
}
