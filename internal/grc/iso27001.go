package grc

// iso27001Catalog contains the ISO/IEC 27001 Annex A controls this tool
// recommends for scored risk scenarios
var iso27001Catalog = Catalog{
	Framework: FrameworkISO27001,
	Version:   "2022",
	Controls: []Control{
		{
			ID:          "A.5.1",
			Name:        "Information security policy",
			Description: "Define, approve, publish, and review an information security policy and topic-specific policies.",
			Domains:     []Domain{DomainGeneral},
		},
		{
			ID:          "A.5.12",
			Name:        "Classification of information",
			Description: "Classify information according to confidentiality, integrity, availability, and interested-party requirements.",
			Domains:     []Domain{DomainDataProtection},
		},
		{
			ID:          "A.5.15",
			Name:        "Access control",
			Description: "Establish and implement rules to control physical and logical access to information and associated assets.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "A.5.16",
			Name:        "Identity management",
			Description: "Manage the full life cycle of identities, covering provisioning, changes, and removal.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "A.5.23",
			Name:        "Information security for use of cloud services",
			Description: "Establish processes for acquiring, using, managing, and exiting cloud services in line with security requirements.",
			Domains:     []Domain{DomainGeneral},
		},
		{
			ID:          "A.7.5",
			Name:        "Secure disposal or re-use of equipment",
			Description: "Verify that storage media and licensed software are removed or securely overwritten before disposal or re-use.",
			Domains:     []Domain{DomainDeviceSecurity},
		},
		{
			ID:          "A.7.8",
			Name:        "Protection of information stored on endpoint devices",
			Description: "Protect information stored on, processed by, or accessible via user endpoint devices.",
			Domains:     []Domain{DomainDeviceSecurity},
		},
		{
			ID:          "A.8.3",
			Name:        "Secure log-on procedures",
			Description: "Control access to systems and applications through a secure log-on procedure.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "A.8.10",
			Name:        "Information deletion",
			Description: "Delete information stored in systems, devices, and other storage media when no longer required.",
			Domains:     []Domain{DomainDataProtection},
		},
		{
			ID:          "A.8.15",
			Name:        "Logging",
			Description: "Produce, store, protect, and analyse logs recording activities, exceptions, faults, and other relevant events.",
			Domains:     []Domain{DomainLoggingMonitoring},
		},
		{
			ID:          "A.8.16",
			Name:        "Monitoring activities",
			Description: "Monitor networks, systems, and applications for anomalous behaviour and evaluate potential security incidents.",
			Domains:     []Domain{DomainLoggingMonitoring},
		},
		{
			ID:          "A.8.20",
			Name:        "Networks security",
			Description: "Secure, manage, and control networks and network devices to protect information in systems and applications.",
			Domains:     []Domain{DomainNetworkSecurity},
		},
		{
			ID:          "A.8.21",
			Name:        "Security of network services",
			Description: "Identify, implement, and monitor security mechanisms, service levels, and requirements of network services.",
			Domains:     []Domain{DomainNetworkSecurity},
		},
		{
			ID:          "A.8.24",
			Name:        "Use of cryptography",
			Description: "Define and implement rules for the effective use of cryptography, including key management.",
			Domains:     []Domain{DomainDataProtection},
		},
	},
}
