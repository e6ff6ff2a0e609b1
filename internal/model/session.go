package model

import "time"

// SessionKind tags which conversational flow owns the next free-text
// message from an identity. A user has at most one open session, so a
// pending admin prompt and a half-finished registration cannot both
// claim the same reply.
type SessionKind int

const (
	KindRegistration SessionKind = iota
	KindAdminAction
)

// RegistrationStep enumerates the onboarding form fields in the strict
// order they are collected. No step may be skipped or revisited.
type RegistrationStep int

const (
	StepName RegistrationStep = iota
	StepEmail
	StepWhatsapp
	StepUniversity
	StepLevel
	StepCourse
	StepWallet
)

// AdminAction is the pending privileged mutation for an admin-action
// session.
type AdminAction int

const (
	ActionPromote AdminAction = iota
	ActionDemote
)

// Session is the transient per-identity state of an open flow.
//
// For KindRegistration, Draft accumulates the collected fields plus the
// referral code minted at /start and the captured referrer, none of
// which is persisted until the final step commits. For KindAdminAction,
// Action says whether the next message promotes or demotes its target.
type Session struct {
	Kind SessionKind

	Step  RegistrationStep
	Draft User

	Action AdminAction

	UpdatedAt time.Time
}
