package capacity

import (
	"fmt"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"

	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/ir"
)

// fakeDescriptor is a minimal descriptor for resolver tests.
type fakeDescriptor struct {
	name    string
	applies func(*config.Section) bool
}

func (d *fakeDescriptor) Name() string { return d.name }

func (d *fakeDescriptor) Applies(section *config.Section) bool { return d.applies(section) }

func (d *fakeDescriptor) Build(section *config.Section) (*ir.Fragment, error) {
	return &ir.Fragment{Kind: d.name}, nil
}

func section(t *testing.T, resourceType, method string) *config.Section {
	t.Helper()
	attrs := make(map[string]hcl.Expression)
	for name, value := range map[string]string{"type": resourceType, "method": method} {
		if value == "" {
			continue
		}
		e, diags := hclsyntax.ParseExpression([]byte(fmt.Sprintf("%q", value)), "capacity_test.hcl", hcl.InitialPos)
		require.False(t, diags.HasErrors(), diags.Error())
		attrs[name] = e
	}
	return &config.Section{Attrs: attrs}
}

func TestTypeMethodPredicate(t *testing.T) {
	applies := TypeMethodPredicate([]string{"product", "category"}, "upsert")

	tests := []struct {
		name         string
		resourceType string
		method       string
		want         bool
	}{
		{"allowed type and exact method", "product", "upsert", true},
		{"second allowed type", "category", "upsert", true},
		{"type outside allow-list", "channel", "upsert", false},
		{"method differs", "product", "delete", false},
		{"type missing", "", "upsert", false},
		{"method missing", "product", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, applies(section(t, tc.resourceType, tc.method)))
		})
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	// Two descriptors with overlapping applicability: the earlier
	// registered one is always chosen.
	matchAll := func(*config.Section) bool { return true }
	catalog := Catalog{
		{Descriptor: &fakeDescriptor{name: "specific", applies: matchAll}},
		{Descriptor: &fakeDescriptor{name: "broad", applies: matchAll}},
	}

	for range 10 {
		entry, err := Resolve(section(t, "product", "all"), catalog)
		require.NoError(t, err)
		require.Equal(t, "specific", entry.Name())
	}
}

func TestResolve_SkipsNonApplicable(t *testing.T) {
	catalog := Catalog{
		{Descriptor: &fakeDescriptor{name: "never", applies: func(*config.Section) bool { return false }}},
		{Descriptor: &fakeDescriptor{name: "always", applies: func(*config.Section) bool { return true }}},
	}

	entry, err := Resolve(section(t, "product", "all"), catalog)
	require.NoError(t, err)
	require.Equal(t, "always", entry.Name())
}

func TestResolve_NoMatchIsFatal(t *testing.T) {
	catalog := Catalog{
		{Descriptor: &fakeDescriptor{name: "never", applies: func(*config.Section) bool { return false }}},
	}

	_, err := Resolve(section(t, "channel", "purge"), catalog)

	var unresolved *UnresolvedCapacityError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, "channel", unresolved.Type)
	require.Equal(t, "purge", unresolved.Method)
}

func TestResolve_EmptyCatalog(t *testing.T) {
	_, err := Resolve(section(t, "product", "all"), nil)

	var unresolved *UnresolvedCapacityError
	require.ErrorAs(t, err, &unresolved)
}
