package model

// Package model defines the domain data structures shared by the workflow, the
// services and the UI: conversion requests, output formats, download results and
// the workflow status enum with its strictly linear transitions.
