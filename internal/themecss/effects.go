package themecss

import "github.com/phil426/podabio-sub000/internal/tokens"

// effectTemplate is a pre-authored rule set selected by keyword. Templates
// reference custom properties only; nothing user-supplied is spliced in.
type effectTemplate struct {
	class string
	css   string
}

var spatialTemplates = map[tokens.SpatialEffect]effectTemplate{
	tokens.SpatialGlass: {
		class: "spatial-glass",
		css: `body.spatial-glass .widget {
  background: var(--color-background-surface-translucent);
  backdrop-filter: blur(12px) saturate(140%);
  -webkit-backdrop-filter: blur(12px) saturate(140%);
}
`,
	},
	tokens.SpatialDepth: {
		class: "spatial-depth",
		css: `body.spatial-depth .widgets {
  perspective: 1200px;
}
body.spatial-depth .widget {
  transform: translateZ(0);
  box-shadow: var(--widget-box-shadow), var(--shadow-level-2);
}
`,
	},
	tokens.SpatialFloating: {
		class: "spatial-floating",
		css: `@keyframes podabio-float {
  0%, 100% { transform: translateY(0); }
  50% { transform: translateY(-6px); }
}
body.spatial-floating .widget {
  animation: podabio-float 6s var(--motion-easing-standard) infinite;
}
body.spatial-floating .widget:nth-child(2n) {
  animation-delay: calc(var(--motion-duration-slow) * 2);
}
`,
	},
	tokens.SpatialTilt: {
		class: "spatial-tilt",
		css: `body.spatial-tilt .widgets {
  perspective: 900px;
}
body.spatial-tilt .widget {
  transition: transform var(--motion-duration-standard) var(--motion-easing-standard);
}
body.spatial-tilt .widget:hover {
  transform: rotateX(4deg) rotateY(-4deg);
}
`,
	},
}

var pageNameTemplates = map[tokens.PageNameEffect]effectTemplate{
	tokens.PageNameGlow: {
		class: "page-name-glow",
		css: `.page-title.page-name-glow {
  text-shadow: 0 0 12px var(--color-glow-primary);
}
`,
	},
	tokens.PageNameShadow: {
		class: "page-name-shadow",
		css: `.page-title.page-name-shadow {
  text-shadow: 0 2px 6px rgba(15, 23, 42, 0.35);
}
`,
	},
	tokens.PageNameNeon: {
		class: "page-name-neon",
		css: `.page-title.page-name-neon {
  color: var(--color-text-inverse);
  text-shadow: 0 0 4px var(--color-glow-primary), 0 0 12px var(--color-glow-primary), 0 0 24px var(--color-accent-primary);
}
`,
	},
	tokens.PageNameGradient: {
		class: "page-name-gradient",
		css: `.page-title.page-name-gradient {
  background-image: var(--gradient-accent);
  background-clip: text;
  -webkit-background-clip: text;
  -webkit-text-fill-color: transparent;
  color: transparent;
}
`,
	},
	tokens.PageNameOutline: {
		class: "page-name-outline",
		css: `.page-title.page-name-outline {
  -webkit-text-stroke: 1px var(--color-heading);
  color: transparent;
}
`,
	},
}

var featuredTemplates = map[tokens.FeaturedEffect]effectTemplate{
	tokens.FeaturedPulse: {
		class: "featured-pulse",
		css: `@keyframes podabio-pulse {
  0%, 100% { transform: scale(1); }
  50% { transform: scale(1.02); }
}
.widget.featured-pulse {
  animation: podabio-pulse 2s var(--motion-easing-standard) infinite;
}
`,
	},
	tokens.FeaturedShine: {
		class: "featured-shine",
		css: `@keyframes podabio-shine {
  from { background-position: -200% 0; }
  to { background-position: 200% 0; }
}
.widget.featured-shine {
  background-image: linear-gradient(110deg, transparent 40%, rgba(255, 255, 255, 0.35) 50%, transparent 60%);
  background-size: 200% 100%;
  animation: podabio-shine 3s linear infinite;
}
`,
	},
	tokens.FeaturedGlow: {
		class: "featured-glow",
		css: `.widget.featured-glow {
  box-shadow: var(--widget-box-shadow), 0 0 18px var(--color-glow-primary);
}
`,
	},
	tokens.FeaturedLift: {
		class: "featured-lift",
		css: `.widget.featured-lift {
  transform: translateY(-4px);
  box-shadow: var(--shadow-level-2);
  transition: transform var(--motion-duration-fast) var(--motion-easing-decelerate);
}
`,
	},
}

// SpatialClass returns the body class for a spatial effect, "" for none.
func SpatialClass(e tokens.SpatialEffect) string {
	return spatialTemplates[e].class
}
