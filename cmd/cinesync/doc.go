// Command cinesync syncs movie metadata from the TMDB catalog into a CMS
// collection. The sync command runs the pipeline; supporting commands manage
// configuration, the genre mapping, and the run journal.
package main
