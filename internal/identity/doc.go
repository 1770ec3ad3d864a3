/*
Package identity provides the stable integer keys used to address entries in
the runtime data and variable tables.

An ID is derived deterministically from a persistent identifier (usually the
GUID of the asset object that declares it) so that rebuilding a rig does not
churn the identities of its entries. Private backing storage that has no GUID
of its own is addressed by a variant ID, derived from a base ID and a string
tag.
*/
package identity
