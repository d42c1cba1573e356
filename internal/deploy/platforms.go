package deploy

// Platform is a hosting target with its manual deployment steps.
type Platform struct {
	Name    string
	Summary string
	Steps   []string
}

var platforms = []Platform{
	{
		Name:    "GitHub Pages",
		Summary: "Push the build directory to a GitHub repository and enable Pages",
		Steps: []string{
			"Push this directory to a GitHub repository",
			"Enable GitHub Pages in repository settings",
			`Select source as "Deploy from a branch"`,
			"Choose the branch containing this directory",
		},
	},
	{
		Name:    "Netlify",
		Summary: "Drag and drop the build directory or connect a repository (netlify.toml included)",
		Steps: []string{
			"Drag and drop this directory to Netlify",
			"Or connect your GitHub repository",
			"Set build command to empty (already built)",
			"Set publish directory to this directory",
		},
	},
	{
		Name:    "Vercel",
		Summary: "Run the Vercel CLI in the build directory",
		Steps: []string{
			"Install Vercel CLI: `npm i -g vercel`",
			"Run `vercel` in this directory",
			"Follow the prompts",
		},
	},
	{
		Name:    "Apache/Nginx",
		Summary: "Upload the build directory to a web server (.htaccess included for Apache)",
		Steps: []string{
			"Upload all files to your web server",
			"Configure your web server to serve static files",
			"Use the included .htaccess file for Apache",
		},
	},
}

// Platforms returns the supported hosting platforms in display order.
func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	for i, p := range platforms {
		p.Steps = append([]string(nil), p.Steps...)
		out[i] = p
	}
	return out
}

// PlatformSummaries maps each platform name to a one-line instruction.
func PlatformSummaries() map[string]string {
	out := make(map[string]string, len(platforms))
	for _, p := range platforms {
		out[p.Name] = p.Summary
	}
	return out
}
