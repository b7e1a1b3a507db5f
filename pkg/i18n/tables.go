package i18n

var es = map[string]string{
	"window_title":              "Gestor de Firma Digital",
	"hello_world":               "Hola mundo",
	"loading_installers":        "Cargando instaladores",
	"refresh":                   "Actualizar",
	"no_installers_found":       "No se encontraron instaladores",
	"no_install_message":        "La firma digital no está instalada.",
	"recommended_version":       "Versión recomendada:",
	"install":                   "Instalar",
	"installed_version":         "Versión instalada:",
	"latest_version_installed":  "Tiene la última versión instalada",
	"update_digital_signature":  "Actualizar firma digital",
	"available_installers":      "Instaladores disponibles",
	"os_family":                 "Sistema",
	"os_not_supported":          "Sistema operativo no soportado",
	"reason_unknown-os":         "No se pudo detectar el sistema operativo.",
	"reason_unsupported-os":     "Este sistema operativo no tiene instaladores soportados.",
	"reason_unavailable":        "No se pudo obtener la lista de instaladores.",
	"reason_no-confirmed-match": "Ningún instalador publicado coincide con los soportados.",
	"install_done":              "Rutina de instalación completada",
	"install_unsupported":       "No hay rutina de instalación para este sistema",
	"help_keys":                 "r: actualizar · i: instalar · q: salir",
}

var en = map[string]string{
	"window_title":              "Digital Signature Manager",
	"hello_world":               "Hello world",
	"loading_installers":        "Loading installers",
	"refresh":                   "Refresh",
	"no_installers_found":       "No installers found",
	"no_install_message":        "Digital signature is not installed.",
	"recommended_version":       "Recommended version:",
	"install":                   "Install",
	"installed_version":         "Installed version:",
	"latest_version_installed":  "Latest version installed",
	"update_digital_signature":  "Update digital signature",
	"available_installers":      "Available installers",
	"os_family":                 "System",
	"os_not_supported":          "Operating system not supported",
	"reason_unknown-os":         "The operating system could not be detected.",
	"reason_unsupported-os":     "This operating system has no supported installers.",
	"reason_unavailable":        "The installer list could not be retrieved.",
	"reason_no-confirmed-match": "No published installer matches a supported one.",
	"install_done":              "Installation routine completed",
	"install_unsupported":       "No installation routine for this system",
	"help_keys":                 "r: refresh · i: install · q: quit",
}
