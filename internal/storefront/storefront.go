// Package storefront assembles the page chrome around the menu: header, floating
// cart button, mobile category nav and hero copy.
package storefront

import (
	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	"github.com/angelmondragon/vendo-storefront/internal/menu"
)

type Header struct {
	SiteName  string `json:"siteName"`
	SiteLogo  string `json:"siteLogo"`
	CartCount int    `json:"cartCount"`
	ShowBadge bool   `json:"showBadge"`
}

type FloatingCart struct {
	Visible   bool `json:"visible"`
	ItemCount int  `json:"itemCount"`
}

type NavItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

type CallToAction struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Hero struct {
	Headline string         `json:"headline"`
	Subtitle string         `json:"subtitle"`
	Body     string         `json:"body"`
	Actions  []CallToAction `json:"actions"`
}

type Page struct {
	Header       Header       `json:"header"`
	FloatingCart FloatingCart `json:"floatingCart"`
	MobileNav    []NavItem    `json:"mobileNav"`
	Hero         Hero         `json:"hero"`
}

func BuildHeader(settings catalog.SiteSettings, cartCount int) Header {
	settings = settings.WithDefaults()
	return Header{
		SiteName:  settings.SiteName,
		SiteLogo:  settings.SiteLogo,
		CartCount: cartCount,
		ShowBadge: cartCount > 0,
	}
}

func BuildFloatingCart(itemCount int) FloatingCart {
	return FloatingCart{Visible: itemCount > 0, ItemCount: itemCount}
}

// BuildMobileNav lists categories in order, flagging the active one. An unknown
// active id falls back to the first category.
func BuildMobileNav(categories []catalog.Category, activeCategory string) []NavItem {
	active := menu.ResolveActive(categories, activeCategory)
	nav := make([]NavItem, 0, len(categories))
	for _, c := range categories {
		nav = append(nav, NavItem{ID: c.ID, Name: c.Name, Icon: c.Icon, Active: c.ID == active})
	}
	return nav
}

func BuildHero() Hero {
	return Hero{
		Headline: "Quality Vendo Machines",
		Subtitle: "Complete Business Solutions",
		Body: "Start your own profitable vending machine business with our complete packages. " +
			"Hot & Cold drink machines, premium flavors, and full support included.",
		Actions: []CallToAction{
			{Label: "View Packages", Href: "#menu"},
			{Label: "Get Quote", Href: "#contact"},
		},
	}
}

// Build assembles the page chrome from the current catalog snapshot and cart size.
func Build(snapshot *catalog.Snapshot, cartCount int, activeCategory string) Page {
	return Page{
		Header:       BuildHeader(snapshot.Settings(), cartCount),
		FloatingCart: BuildFloatingCart(cartCount),
		MobileNav:    BuildMobileNav(snapshot.Categories(), activeCategory),
		Hero:         BuildHero(),
	}
}
