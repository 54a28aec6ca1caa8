package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/iossim/internal/domain"
)

func TestChoices(t *testing.T) {
	choices := Choices(sampleCatalog(), "")

	var ids []string
	for _, c := range choices {
		ids = append(ids, c.Identifier)
	}
	assert.Equal(t, []string{
		"iPhone-6, 8.2",
		"iPhone-6, 8.3",
		"iPhone-6-Plus, 8.2",
		"iPhone-6-Plus, 8.3",
	}, ids)
	assert.Equal(t, "com.apple.CoreSimulator.SimDeviceType.iPhone-6", choices[0].DeviceTypeID)
	assert.Equal(t, "iOS 8.2", choices[0].Runtime)
}

func TestChoices_EveryChoiceResolves(t *testing.T) {
	cat := sampleCatalog()
	for _, c := range Choices(cat, "") {
		t.Run(c.Identifier, func(t *testing.T) {
			id, err := ParseIdentifier(c.Identifier)
			require.NoError(t, err)
			got, err := ResolveIn(cat, id, Options{})
			require.NoError(t, err)
			assert.Equal(t, c.Name, got.Name)
			assert.Equal(t, c.Runtime, got.Runtime)
		})
	}
}

func TestChoices_SkipsUnavailableAndUnknown(t *testing.T) {
	cat := &domain.Catalog{
		DeviceTypes: []domain.DeviceType{{ID: DeviceTypePrefix + "iPhone-6", Name: "iPhone 6"}},
		Runtimes: []domain.Runtime{
			{Name: "iOS 8.1", Available: false},
			{Name: "iOS 8.2", Available: true},
		},
		Devices: []domain.DeviceGroup{
			{Runtime: "iOS 8.1", Devices: []domain.DeviceInstance{{Name: "iPhone 6", UDID: "A"}}},
			{Runtime: "iOS 8.2", Devices: []domain.DeviceInstance{
				{Name: "iPhone 6", UDID: "B"},
				{Name: "Custom Rig", UDID: "C"},
			}},
		},
	}

	choices := Choices(cat, "")
	require.Len(t, choices, 1)
	assert.Equal(t, "iPhone-6, 8.2", choices[0].Identifier)
}

func TestChoices_NilCatalog(t *testing.T) {
	assert.Empty(t, Choices(nil, ""))
}
