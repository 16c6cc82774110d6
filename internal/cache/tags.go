package cache

// Kind enumerates the resource families the cache can file results under.
type Kind string

const (
	KindContact      Kind = "Contact"
	KindContactGroup Kind = "ContactGroup"
	KindSender       Kind = "Sender"
	KindApiKey       Kind = "ApiKey"
	KindSmsJob       Kind = "SmsJob"
	KindTransaction  Kind = "Transaction"
	KindTenant       Kind = "Tenant"
	KindProfile      Kind = "Profile"
	KindSmsPackage   Kind = "SmsPackage"
	KindDashboard    Kind = "Dashboard"
)

// ListScope tags a whole-collection result as opposed to a single entity.
const ListScope = "LIST"

// Tag labels a cached query result and a mutation's invalidation set.
// Invalidation is exact intersection over these values.
type Tag struct {
	Kind  Kind
	Scope string
}

func ListTag(k Kind) Tag {
	return Tag{Kind: k, Scope: ListScope}
}

func IDTag(k Kind, id string) Tag {
	return Tag{Kind: k, Scope: id}
}
