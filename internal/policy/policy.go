// Package policy decides whether a caller may perform a verb on a
// resource kind. It is a pure lookup over a per-(resource,verb)
// required-role table: no state, no hierarchy, no wildcard matching.
//
// Possession of a valid token is established before this package runs;
// an entry of RequireToken therefore always allows. The asymmetries in
// the table (transaction list gated but get/update/delete not, user
// records open to any authenticated caller) reproduce the deployed
// contract and must not be "fixed" here.
package policy

// Resource kinds.
const (
	ResourceUser        = "user"
	ResourceEntity      = "entity"
	ResourceTransaction = "transaction"
	ResourceTemplate    = "template"
	ResourceUpload      = "upload"
)

// Verbs.
const (
	VerbList   = "list"
	VerbGet    = "get"
	VerbCreate = "create"
	VerbUpdate = "update"
	VerbDelete = "delete"
)

// Requirement markers for table entries that need no specific role.
const (
	// RequireNone: the verb is open even without a token (signup).
	RequireNone = ""
	// RequireToken: any authenticated caller, regardless of roles.
	RequireToken = "*"
)

type ruleKey struct {
	resource string
	verb     string
}

// rules maps (resource, verb) to the required role. Missing entries deny.
var rules = map[ruleKey]string{
	{ResourceUser, VerbCreate}: RequireNone,
	{ResourceUser, VerbList}:   RequireToken,
	{ResourceUser, VerbGet}:    RequireToken,
	{ResourceUser, VerbUpdate}: RequireToken,
	{ResourceUser, VerbDelete}: RequireToken,

	{ResourceEntity, VerbList}:   RequireToken,
	{ResourceEntity, VerbGet}:    RequireToken,
	{ResourceEntity, VerbCreate}: "tp",
	{ResourceEntity, VerbUpdate}: "tp",
	{ResourceEntity, VerbDelete}: "tp",

	{ResourceTransaction, VerbList}:   "tp",
	{ResourceTransaction, VerbGet}:    RequireToken,
	{ResourceTransaction, VerbCreate}: RequireToken,
	{ResourceTransaction, VerbUpdate}: RequireToken,
	{ResourceTransaction, VerbDelete}: RequireToken,

	{ResourceTemplate, VerbList}:   RequireToken,
	{ResourceTemplate, VerbGet}:    RequireToken,
	{ResourceTemplate, VerbCreate}: "admin",
	{ResourceTemplate, VerbUpdate}: "admin",
	{ResourceTemplate, VerbDelete}: "admin",

	{ResourceUpload, VerbList}:   RequireToken,
	{ResourceUpload, VerbGet}:    RequireToken,
	{ResourceUpload, VerbCreate}: RequireToken,
	{ResourceUpload, VerbDelete}: "tp",
}

// Allow reports whether a caller holding the given role set may perform
// verb on resource. Role matching is exact and case-sensitive membership.
func Allow(resource, verb string, roles []string) bool {
	required, ok := rules[ruleKey{resource, verb}]
	if !ok {
		return false
	}

	switch required {
	case RequireNone, RequireToken:
		return true
	}

	for _, r := range roles {
		if r == required {
			return true
		}
	}
	return false
}

// RequiredRole returns the role a verb demands on a resource, with ok
// false for unknown (resource, verb) pairs.
func RequiredRole(resource, verb string) (string, bool) {
	required, ok := rules[ruleKey{resource, verb}]
	return required, ok
}
