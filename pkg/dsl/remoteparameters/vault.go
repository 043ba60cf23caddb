// Package remoteparameters holds parameters whose values the server resolves
// from an external store when a build starts.
package remoteparameters

import "settingskit/pkg/dsl"

// HashiCorpVaultParameter reads a secret from HashiCorp Vault through a
// project's Vault connection.
type HashiCorpVaultParameter struct {
	dsl.RemoteParameter
	Query   *dsl.StringProp
	VaultID *dsl.StringProp

	// Deprecated: use VaultID. Both write the same parameter.
	Namespace *dsl.StringProp
}

func NewHashiCorpVaultParameter(init func(*HashiCorpVaultParameter)) *HashiCorpVaultParameter {
	p := &HashiCorpVaultParameter{}
	p.Init("hashicorp-vault")
	p.Query = p.String("query", "teamcity_hashicorp_vault_vaultQuery").Required()
	p.Namespace = p.String("namespace", "teamcity_hashicorp_vault_namespace")
	p.VaultID = p.String("vaultId", "teamcity_hashicorp_vault_namespace")
	if init != nil {
		init(p)
	}
	return p
}

// AddHashiCorpVaultParameter registers a Vault parameter under name.
func AddHashiCorpVaultParameter(params *dsl.RemoteParameters, name string, init func(*HashiCorpVaultParameter)) *HashiCorpVaultParameter {
	p := NewHashiCorpVaultParameter(init)
	p.Name = name
	params.Add(p)
	return p
}
