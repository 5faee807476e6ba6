// Package config owns the per-user application directory and the single
// persisted setting: the base directory used by the last successful run.
//
// The settings file is a flat INI file with one section:
//
//	[user_options]
//	top = /home/user/orders
//
// Loading never fails. A missing file, a file that cannot be parsed and a
// missing key all fall back to the user's home directory and are logged
// as warnings. Saving rewrites the whole file.
package config
