// Package secrets redacts credentials from text before it is shown to a user.
//
// Detection uses the gitleaks default rule set. Projects can silence false
// positives with the allowlist section of a .gitleaks.toml at their root.
package secrets
