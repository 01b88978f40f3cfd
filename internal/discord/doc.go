// Package discord delivers donation announcements to a Discord channel
// via an incoming webhook.
//
// One webhook execution carries the whole batch, one line per
// transaction, oldest first. Discord caps message content at 2000
// characters; a batch that formats beyond the cap fails before any send.
package discord
