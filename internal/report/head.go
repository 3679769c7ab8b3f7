package report

import (
	"fmt"

	"github.com/verustcode/reportng/consts"
	"github.com/verustcode/reportng/internal/assets"
	"github.com/verustcode/reportng/internal/markup"
	"github.com/verustcode/reportng/internal/report/scripts"
)

// progressBarID is the element the progress bar script draws into
const progressBarID = "reportng-progress"

func scriptSrc(src string) *markup.Node {
	return markup.El("script", markup.A("src", src))
}

func inlineScript(js string) *markup.Node {
	return markup.El("script").AppendText(js)
}

func inlineStyle(css string) *markup.Node {
	return markup.El("style").AppendText(css)
}

func stylesheet(href string, attrs ...markup.Attr) *markup.Node {
	all := append([]markup.Attr{markup.A("rel", "stylesheet"), markup.A("type", "text/css"), markup.Href(href)}, attrs...)
	return markup.El("link", all...)
}

// themeHref returns the stylesheet the head links to
func (s *Session) themeHref() string {
	if s.opts.UseBootstrap {
		return assets.BootstrapCSS
	}
	return assets.ThemeURL(s.assets.Get(assets.BootswatchTheme), s.opts.Theme)
}

// buildHead emits metadata, library references gated by the feature
// toggles, the inline scripts and any user supplied script or CSS
func (s *Session) buildHead() *markup.Node {
	o := s.opts
	head := markup.El("head")

	head.Append(
		markup.Comment(consts.GeneratorComment),
		markup.El("meta", markup.A("charset", "utf-8")),
		markup.El("meta", markup.A("name", "viewport"), markup.A("content", "width=device-width, initial-scale=1")),
		markup.El("meta", markup.A("name", "generator"), markup.A("content", consts.ProjectName+" "+consts.Version)),
		markup.El("title").AppendText(o.ReportName),
	)

	head.Append(
		scriptSrc(s.assets.Get(assets.JQuery)),
		scriptSrc(s.assets.Get(assets.PopperJS)),
		scriptSrc(s.assets.Get(assets.BootstrapJS)),
	)
	if o.ShowSearch {
		head.Append(scriptSrc(s.assets.Get(assets.MarkJS)))
	}

	head.Append(markup.Comment("JS for tooltip"), inlineScript(scripts.Tooltip))
	if o.ShowSearch {
		head.Append(markup.Comment("JS for mark.js"), inlineScript(scripts.Search))
	}
	head.Append(
		markup.Comment("JS to populate the navbar dropdown"),
		inlineScript(scripts.PopulateNavbar),
		markup.Comment("script that allows for smooth scrolling and adds padding for navbar"),
		inlineScript(scripts.SmoothScroll),
		markup.Comment("js to filter in the dropdown menu"),
		inlineScript(scripts.DropdownFilter),
	)

	if o.UserJavaScript != "" {
		head.Append(markup.Comment("User inserted JS"), inlineScript(o.UserJavaScript))
	}

	head.Append(
		markup.Comment("style sheets"),
		stylesheet(s.themeHref(), markup.ID("bootswatch")),
		markup.El("link", markup.Href(s.assets.Get(assets.FontAwesome)), markup.A("rel", "stylesheet")),
	)

	if o.UseAsciinema {
		head.Append(
			markup.Comment("css and js for asciinema"),
			stylesheet(s.assets.Get(assets.AsciinemaCSS)),
			scriptSrc(s.assets.Get(assets.AsciinemaJS)),
		)
	}

	if o.HighlightCode {
		head.Append(
			markup.Comment("css and js for highlight.js"),
			markup.El("link", markup.A("rel", "stylesheet"), markup.Href(s.assets.Get(assets.HighlightjsCSS))),
			scriptSrc(s.assets.Get(assets.HighlightjsJS)),
			inlineScript(scripts.HighlightInit),
		)
	}

	if o.ShowProgressBar {
		head.Append(
			markup.Comment("js for progress bar"),
			scriptSrc(s.assets.Get(assets.ProgressbarJS)),
			inlineScript(scripts.ProgressBar),
			inlineStyle(fmt.Sprintf("#%s {position: fixed; top: 0; left: 0; width: 100%%; height: 4px; z-index: 2000;}", progressBarID)),
		)
	}

	head.Append(
		markup.Comment("search highlight color control"),
		inlineStyle(fmt.Sprintf("mark {background: %s;} mark.current {background: orangered;}", o.SearchHighlightColor)),
	)

	if o.UserCSS != "" {
		head.Append(markup.Comment("Custom CSS starts here"), inlineStyle(o.UserCSS))
	}

	if o.ThemePreview {
		head.Append(markup.Comment("theme preview jquery"), inlineScript(scripts.ThemePreview))
	}

	return head
}

// buildNavbar emits the sticky navbar and, when enabled, the progress bar
// container. The sections dropdown is filled client-side from h1[id].
func (s *Session) buildNavbar() []*markup.Node {
	o := s.opts

	nav := markup.El("nav", markup.Class("navbar navbar-expand-lg navbar-dark bg-"+o.NavbarColor+" sticky-top"))
	nav.Append(
		markup.El("a", markup.Class("navbar-brand"), markup.Href("#")).AppendText(o.Brand),
		markup.El("span", markup.Class("navbar-text text-secondary")).AppendText(o.ReportName),
	)
	if o.ThemePreview {
		nav.Append(markup.Comment("Theme previewer"), markup.Raw(scripts.ThemePreviewSelect))
	}

	nav.Append(
		markup.El("button",
			markup.Class("navbar-toggler"),
			markup.A("type", "button"),
			markup.A("data-toggle", "collapse"),
			markup.A("data-target", "#navbarid"),
			markup.A("aria-controls", "navbarid"),
			markup.A("aria-expanded", "false"),
			markup.A("aria-label", "Toggle navigation"),
		).Append(markup.El("span", markup.Class("navbar-toggler-icon"))),
	)

	dropdown := markup.El("div", markup.Class("dropdown")).Append(
		markup.El("button",
			markup.Class("btn btn-secondary btn-block dropdown-toggle"),
			markup.A("type", "button"),
			markup.ID("dropdownMenuButton"),
			markup.A("data-toggle", "dropdown"),
			markup.A("aria-haspopup", "true"),
			markup.A("aria-expanded", "false"),
		).AppendText("sections"),
		markup.El("ul",
			markup.Class("dropdown-menu dropdown-menu-right"),
			markup.A("aria-labelledby", "dropdownMenuButton"),
			markup.ID("ddmenu"),
			markup.Style("max-height: 300px; height: auto; overflow: scroll"),
		).Append(
			markup.El("input",
				markup.Class("form-control-sm"),
				markup.ID("ddfilter"),
				markup.A("type", "text"),
				markup.A("placeholder", "Filter.."),
			),
		),
	)

	items := markup.El("ul", markup.Class("navbar-nav")).Append(
		markup.El("li", markup.Class("nav-item")).Append(dropdown),
	)

	if o.ShowSearch {
		items.Append(markup.El("li", markup.Class("nav-item form-inline")).Append(
			markup.El("input",
				markup.Class("form-control mr-sm-2"),
				markup.A("type", "search"),
				markup.A("placeholder", "Search"),
				markup.A("data-toggle", "tooltip"),
				markup.A("data-placement", "bottom"),
				markup.A("title", "Regex capable. Case sensitive."),
			),
			markup.El("span",
				markup.ID("searchcount"),
				markup.Style(fmt.Sprintf("color: %s; font-size: initial; padding-right: 8px; align-self: center;", o.SearchHighlightColor)),
			).AppendText("0"),
			markup.El("button", markup.A("data-search", "next"), markup.Class("btn btn-sm btn-secondary")).AppendText("↓"),
			markup.El("button", markup.A("data-search", "prev"), markup.Class("btn btn-sm btn-secondary")).AppendText("↑"),
		))
	}

	nav.Append(
		markup.El("div",
			markup.Class("navbar-collapse collapse justify-content-md-end"),
			markup.ID("navbarid"),
		).Append(items),
	)

	out := []*markup.Node{nav}
	if o.ShowProgressBar {
		out = append(out, markup.El("div", markup.ID(progressBarID)))
	}
	return out
}
