package config

import (
	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
)

// WindowSpec builds the spec for opening appID from the catalog. Unknown ids
// open a default-sized window titled after the id.
func (c *UserConfig) WindowSpec(appID string) desktop.WindowSpec {
	app, ok := c.FindApp(appID)
	if !ok {
		return desktop.WindowSpec{AppID: appID, Title: appID}
	}

	mode, _ := desktop.ParseMode(app.Mode)
	spec := desktop.WindowSpec{
		AppID: app.ID,
		Title: app.Name,
		Size:  desktop.Size{Width: app.Width, Height: app.Height},
		Mode:  mode,
	}
	if app.Component != "" {
		spec.Component = desktop.Component(app.Component)
	}
	return spec
}

// DesktopOptions seeds a new desktop from the [desktop] section. A nil
// viewport uses the configured default size.
func (c *UserConfig) DesktopOptions(vp desktop.Viewport) desktop.Options {
	if vp == nil {
		vp = desktop.FixedViewport{Width: c.Desktop.ViewportWidth, Height: c.Desktop.ViewportHeight}
	}
	return desktop.Options{
		Viewport:      vp,
		Desktops:      c.Desktop.Desktops,
		MaxRecentApps: c.Desktop.MaxRecentApps,
	}
}

// AppIDs returns the catalog ids in catalog order.
func (c *UserConfig) AppIDs() []string {
	ids := make([]string, len(c.Apps))
	for i, app := range c.Apps {
		ids[i] = app.ID
	}
	return ids
}
