package adapters

import (
	"github.com/rewindio/aws-eb-update-notifier/pkg/models/api"
	"github.com/rewindio/aws-eb-update-notifier/pkg/models/domain"
)

func MapOutdatedEnvironmentDomainToApi(o domain.OutdatedEnvironment) api.OutdatedEnvironment {
	return api.OutdatedEnvironment{
		ApplicationName: o.Environment.ApplicationName,
		EnvironmentName: o.Environment.EnvironmentName,
		EnvironmentId:   o.Environment.EnvironmentID,
		PlatformBranch:  o.Environment.PlatformBranch,
		CurrentVersion:  o.Environment.CurrentVersion,
		LatestVersion:   o.Latest.Version,
	}
}

func MapWarningDomainToApi(w domain.Warning) api.Warning {
	warning := api.Warning{
		ApplicationName: w.ApplicationName,
		EnvironmentName: w.EnvironmentName,
	}
	if w.Err != nil {
		warning.Message = w.Err.Error()
	}
	return warning
}

func MapScanResultDomainToApi(r domain.ScanResult) api.ScanReport {
	report := api.ScanReport{
		Outdated: make([]api.OutdatedEnvironment, 0, len(r.Outdated)),
		Warnings: make([]api.Warning, 0, len(r.Warnings)),
	}
	for _, o := range r.Outdated {
		report.Outdated = append(report.Outdated, MapOutdatedEnvironmentDomainToApi(o))
	}
	for _, w := range r.Warnings {
		report.Warnings = append(report.Warnings, MapWarningDomainToApi(w))
	}
	return report
}
