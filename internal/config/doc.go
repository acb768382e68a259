// Package config defines the format-agnostic model of a sensitivity settings
// file, the Loader interface implemented per file format, and the process
// environment the run reads its endpoints, credentials and tuning knobs from.
//
// Loaders translate their own syntax into a Model. Model.Settings turns that
// into the sensitivity.Settings the rest of the application works with, so
// every format shares one set of normalisation rules.
package config
