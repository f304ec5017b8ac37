package enum

type MemberRole string

const (
	MemberRoleLeader MemberRole = "LEADER"
	MemberRoleMember MemberRole = "MEMBER"
)
