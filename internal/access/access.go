// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

// Package access provides authorization decisions for the medical
// records API.
//
// Decisions are pure: Decide inspects the requesting identity, the
// requested action, and an ownership snapshot of the target resource,
// and returns Allow or Deny. It performs no I/O; callers load the
// resource (and, for analyses, the parent dossier) before asking.
//
// Rules by resource:
//   - Dossier: admins are unrestricted; the owning doctor may read,
//     update, and delete; the owning patient may read. Creation is
//     open to any authenticated identity (party roles are validated
//     by the record service against the store).
//   - Analysis: visibility follows the parent dossier's owners;
//     create/update/delete require the requester to be the dossier's
//     doctor.
//   - Appointment: only the two parties may read; updates and deletes
//     are not exposed.
//   - Profile: an identity may read and update only its own record.
package access

import (
	"fmt"
	"strings"
)

// Role is a canonical, lowercase user role.
type Role string

// Known roles. Role strings arriving from tokens or request payloads
// are normalized with NormalizeRole before any rule is applied.
const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// NormalizeRole lowercases and validates a role string.
func NormalizeRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Action is an operation on a resource.
type Action string

// Actions evaluated by Decide.
const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Identity is the authenticated requester.
type Identity struct {
	ID   int64
	Role Role
}

// Dossier is the ownership snapshot of a medical file.
type Dossier struct {
	DoctorID  int64
	PatientID int64
}

// Analysis is the ownership snapshot of a lab analysis; ownership is
// inherited from the parent dossier.
type Analysis struct {
	Dossier Dossier
}

// Appointment is the ownership snapshot of an appointment.
type Appointment struct {
	DoctorID  int64
	PatientID int64
}

// Profile is the ownership snapshot of a user profile.
type Profile struct {
	OwnerID int64
}

// Decision is the outcome of an access check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with a human-readable reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Decide evaluates whether the identity may perform the action on the
// resource. Unknown resource types are denied.
func Decide(id Identity, action Action, resource any) Decision {
	switch res := resource.(type) {
	case Dossier:
		return decideDossier(id, action, res)
	case Analysis:
		return decideAnalysis(id, action, res.Dossier)
	case Appointment:
		return decideAppointment(id, action, res)
	case Profile:
		return decideProfile(id, action, res)
	default:
		return Deny(fmt.Sprintf("unknown resource type %T", resource))
	}
}

func decideDossier(id Identity, action Action, d Dossier) Decision {
	if id.Role == RoleAdmin {
		return Allow()
	}
	switch action {
	case ActionCreate:
		return Allow()
	case ActionRead:
		if id.Role == RoleDoctor && d.DoctorID == id.ID {
			return Allow()
		}
		if id.Role == RolePatient && d.PatientID == id.ID {
			return Allow()
		}
		return Deny("dossier belongs to another doctor and patient")
	case ActionUpdate, ActionDelete:
		if id.Role == RoleDoctor && d.DoctorID == id.ID {
			return Allow()
		}
		return Deny("only the owning doctor may modify a dossier")
	default:
		return Deny(fmt.Sprintf("unsupported action %q on dossier", action))
	}
}

func decideAnalysis(id Identity, action Action, d Dossier) Decision {
	switch action {
	case ActionRead:
		switch id.Role {
		case RolePatient:
			if d.PatientID == id.ID {
				return Allow()
			}
			return Deny("analysis belongs to another patient's dossier")
		case RoleDoctor:
			if d.DoctorID == id.ID {
				return Allow()
			}
			return Deny("analysis belongs to another doctor's dossier")
		default:
			return Allow()
		}
	case ActionCreate, ActionUpdate, ActionDelete:
		if id.Role != RoleDoctor {
			return Deny("only doctors may modify analyses")
		}
		if d.DoctorID != id.ID {
			return Deny("analysis dossier is owned by another doctor")
		}
		return Allow()
	default:
		return Deny(fmt.Sprintf("unsupported action %q on analysis", action))
	}
}

func decideAppointment(id Identity, action Action, a Appointment) Decision {
	switch action {
	case ActionRead:
		if a.DoctorID == id.ID || a.PatientID == id.ID {
			return Allow()
		}
		return Deny("requester is not a party to this appointment")
	default:
		return Deny(fmt.Sprintf("unsupported action %q on appointment", action))
	}
}

func decideProfile(id Identity, action Action, p Profile) Decision {
	switch action {
	case ActionRead, ActionUpdate:
		if p.OwnerID == id.ID {
			return Allow()
		}
		return Deny("profiles are accessible only by their owner")
	default:
		return Deny(fmt.Sprintf("unsupported action %q on profile", action))
	}
}
