// Package i18n holds the user-facing message catalogs of the storefront
// client and resolves them per language.
//
// Catalogs are YAML documents keyed by language, with nested sections that
// flatten into dotted keys ("auth.login_failed"). English and Chinese
// catalogs are embedded; additional files or maps can be merged with
// WithFile and WithCatalog. Language negotiation uses golang.org/x/text/language,
// so "zh-CN" or a full Accept-Language value resolves to "zh".
//
//	tr := i18n.Default()
//	loc := tr.Localizer("zh-CN")
//	msg := loc.T("validation.username_min", "min", "3") // "用户名至少3个字符"
//
// Placeholders use the %{name} syntax and are filled from name/value pairs.
package i18n
