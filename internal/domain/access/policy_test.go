package access

import "testing"

type ownedRecord struct {
	owner string
}

func (r ownedRecord) Owner() string { return r.owner }

type plainRecord struct{}

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name    string
		sub     Subject
		record  any
		allowed bool
	}{
		{
			name:    "owner accede a su registro",
			sub:     Subject{UserID: "u1"},
			record:  ownedRecord{owner: "u1"},
			allowed: true,
		},
		{
			name:    "no-owner denegado",
			sub:     Subject{UserID: "u2"},
			record:  ownedRecord{owner: "u1"},
			allowed: false,
		},
		{
			name:    "privilegiado accede a registro ajeno",
			sub:     Subject{UserID: "u2", Privileged: true},
			record:  ownedRecord{owner: "u1"},
			allowed: true,
		},
		{
			name:    "registro sin owner denegado para no privilegiado",
			sub:     Subject{UserID: "u1"},
			record:  plainRecord{},
			allowed: false,
		},
		{
			name:    "registro sin owner permitido para privilegiado",
			sub:     Subject{UserID: "u1", Privileged: true},
			record:  plainRecord{},
			allowed: true,
		},
		{
			name:    "owner vacío nunca matchea subject vacío",
			sub:     Subject{UserID: ""},
			record:  ownedRecord{owner: ""},
			allowed: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.sub, tc.record)
			if tc.allowed && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tc.allowed && err != ErrForbidden {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
