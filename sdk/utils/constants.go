// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	DefaultConfigFile  = "config.yml"
	ConfigPathEnv      = "CONTRIBDL_CONFIG"
	LogLevelEnv        = "LOG_LEVEL"
	DefaultDestination = "minioDownload"

	FilteredManifestName = "filtered_objects.csv"
	TotalManifestName    = "total_objects.csv"

	// ini section and yaml root key holding the store settings
	StoreSection = "minio"
)

// Metadata property names, as stored in the objects' user metadata.
const (
	PropUserID             = "userid"
	PropAge                = "age"
	PropGender             = "gender"
	PropHearingStatus      = "hearingstatus"
	PropAnnotationLanguage = "annotationlanguage"
	PropLanguageType       = "languagetype"
	PropMessageType        = "messagetype"
	PropRegister           = "register"
	PropSourceLanguage     = "sourcelanguage"
	PropFileType           = "filetype"
)

// Properties is the fixed property list, in manifest column order.
var Properties = []string{
	PropUserID,
	PropAge,
	PropGender,
	PropHearingStatus,
	PropAnnotationLanguage,
	PropLanguageType,
	PropMessageType,
	PropRegister,
	PropSourceLanguage,
	PropFileType,
}
